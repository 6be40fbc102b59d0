package wad

// Sizes of the on-disk records, in bytes.
const (
	HeaderSize = 12
	EntrySize  = 16
	NameSize   = 8
)

// Known signatures. IWAD is a complete game data file, PWAD a patch
// that is loaded on top of one.
var (
	SignatureIWAD = Signature{'I', 'W', 'A', 'D'}
	SignaturePWAD = Signature{'P', 'W', 'A', 'D'}
)
