package wad

import "github.com/samber/lo"

// Archive is a decoded WAD directory. It is built once by a successful
// load and is not modified afterwards.
type Archive struct {
	Signature Signature
	Directory []Entry
}

// Len returns the number of directory entries.
func (a *Archive) Len() int {
	return len(a.Directory)
}

// Find returns the last entry named name and its index.
// Later entries override earlier ones, which is how PWADs replace lumps.
func (a *Archive) Find(name string) (Entry, int, bool) {
	want, err := ParseLumpName(name)
	if err != nil {
		return Entry{}, -1, false
	}
	return lo.FindLastIndexOf(a.Directory, func(e Entry) bool {
		return e.Name == want
	})
}

// Names returns the entry names in directory order.
func (a *Archive) Names() []string {
	return lo.Map(a.Directory, func(e Entry, _ int) string {
		return e.Name.String()
	})
}
