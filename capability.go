package porridge

// Tag values accepted by Scan. Custom hashers and maskers registered with
// WithHasher or WithMasker extend these sets for a single scan.
var (
	validEncryptAlgos = map[EncryptAlgo]bool{
		EncryptAES:      true,
		EncryptRSA:      true,
		EncryptEnvelope: true,
	}

	validHashAlgos = map[HashAlgo]bool{
		HashArgon2: true,
		HashBcrypt: true,
		HashSHA256: true,
		HashSHA512: true,
	}

	validMaskTypes = map[MaskType]bool{
		MaskSSN:   true,
		MaskEmail: true,
		MaskPhone: true,
		MaskCard:  true,
		MaskIP:    true,
		MaskUUID:  true,
		MaskIBAN:  true,
		MaskName:  true,
	}
)

// IsValidEncryptAlgo reports whether algo is a known encryption algorithm.
func IsValidEncryptAlgo(algo EncryptAlgo) bool {
	return validEncryptAlgos[algo]
}

// IsValidHashAlgo reports whether algo is a builtin hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidMaskType reports whether mt is a builtin mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}
