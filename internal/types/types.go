package wadtypes

import (
	"github.com/samber/lo"

	"github.com/ossyrian/wadparse/internal/wad"
)

// Catalog is the JSON form of a decoded archive.
type Catalog struct {
	File      string `json:"file,omitempty"`
	Signature string `json:"signature"`
	Count     int    `json:"count"`
	Lumps     []Lump `json:"lumps"`
}

// Lump is the JSON form of one directory entry.
type Lump struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Offset   int32  `json:"offset"`
	Size     int32  `json:"size"`
	RealSize int32  `json:"real_size"`
}

// FromArchive converts a into its JSON form, keeping directory order.
func FromArchive(file string, a *wad.Archive) Catalog {
	return Catalog{
		File:      file,
		Signature: a.Signature.String(),
		Count:     a.Len(),
		Lumps: lo.Map(a.Directory, func(e wad.Entry, i int) Lump {
			return LumpFromEntry(i, e)
		}),
	}
}

// LumpFromEntry converts entry i.
func LumpFromEntry(i int, e wad.Entry) Lump {
	return Lump{
		Index:    i,
		Name:     e.Name.String(),
		Offset:   int32(e.Start),
		Size:     int32(e.Size),
		RealSize: int32(e.RealSize),
	}
}
