package porridge

import (
	"testing"

	"github.com/cockroachdb/errors"
)

type notASerializer struct{}

func TestAsSerializer(t *testing.T) {
	var nilFunc SerializerFunc
	var nilChain *Chain

	tests := []struct {
		name      string
		candidate any
		wantErr   bool
	}{
		{"interface", Identity(), false},
		{"adapter", SerializerFunc(func(_, in any, _ Options) (any, error) { return in, nil }), false},
		{"raw func", func(_, in any, _ Options) (any, error) { return in, nil }, false},
		{"nil", nil, true},
		{"typed nil func", nilFunc, true},
		{"typed nil pointer", nilChain, true},
		{"wrong arity", func(any) (any, error) { return nil, nil }, true},
		{"struct", notASerializer{}, true},
		{"string", "serialize", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := AsSerializer(tt.candidate)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSerializer) {
					t.Errorf("AsSerializer() error = %v, want ErrInvalidSerializer", err)
				}
				return
			}
			if err != nil || s == nil {
				t.Errorf("AsSerializer() = %v, %v", s, err)
			}
		})
	}
}

func TestAsExtractor(t *testing.T) {
	if _, err := AsExtractor(func(o any, _ Options) (any, error) { return o, nil }); err != nil {
		t.Errorf("raw func should qualify: %v", err)
	}
	if _, err := AsExtractor(Identity()); !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("serializer as extractor error = %v, want ErrInvalidExtractor", err)
	}
}

func TestAsFieldPolicy(t *testing.T) {
	if _, err := AsFieldPolicy(func(_, _ any, _ Options) bool { return true }); err != nil {
		t.Errorf("raw func should qualify: %v", err)
	}
	if _, err := AsFieldPolicy(Whitelist{"id": true}); !errors.Is(err, ErrInvalidFieldPolicy) {
		t.Errorf("bare whitelist map error = %v, want ErrInvalidFieldPolicy", err)
	}
}

func TestValidSerializers_NamesParam(t *testing.T) {
	tests := []struct {
		name       string
		candidates []any
		wantParam  string
	}{
		{"single", []any{nil}, "base"},
		{"indexed", []any{Identity(), 42, Identity()}, "base[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidSerializers("base", tt.candidates...)

			var ce *ContractError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *ContractError", err)
			}
			if ce.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", ce.Param, tt.wantParam)
			}
			if !errors.Is(err, ErrContract) {
				t.Error("should match ErrContract")
			}
		})
	}
}

func TestValidSerializers_Empty(t *testing.T) {
	if err := ValidSerializers("serializers"); err != nil {
		t.Errorf("zero candidates should pass: %v", err)
	}
}

func TestValidators_DistinctKinds(t *testing.T) {
	errS := ValidSerializers("s", 1)
	errE := ValidExtractors("e", 1)
	errP := ValidFieldPolicies("p", 1)

	if !errors.Is(errS, ErrInvalidSerializer) || errors.Is(errS, ErrInvalidExtractor) {
		t.Errorf("serializer error = %v", errS)
	}
	if !errors.Is(errE, ErrInvalidExtractor) || errors.Is(errE, ErrInvalidFieldPolicy) {
		t.Errorf("extractor error = %v", errE)
	}
	if !errors.Is(errP, ErrInvalidFieldPolicy) || errors.Is(errP, ErrInvalidSerializer) {
		t.Errorf("policy error = %v", errP)
	}
}
