// Package structure materializes canonical project trees
// (project > blocks > floors > flats) from counts.
package structure

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Counts are the three generation inputs. Values below 1 are raised to 1.
type Counts struct {
	Blocks        int
	Floors        int
	FlatsPerFloor int
}

// Naming controls the labels given to generated floors and flats.
// Formats receive the 1-based index.
type Naming struct {
	FloorFormat string
	FlatFormat  string
}

var (
	EnglishNaming = Naming{FloorFormat: "%d. Floor", FlatFormat: "Flat %d"}
	TurkishNaming = Naming{FloorFormat: "%d. Kat", FlatFormat: "Daire %d"}
)

// NamingForLocale returns the preset for a locale tag, defaulting to English.
func NamingForLocale(locale string) Naming {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "tr", "tr-tr", "turkish":
		return TurkishNaming
	default:
		return EnglishNaming
	}
}

// Generate builds a brand-new tree with English labels.
func Generate(projectName string, c Counts) *domain.ScopeNode {
	return GenerateWithNaming(projectName, c, EnglishNaming)
}

// GenerateWithNaming builds a brand-new tree. It never merges with an
// existing tree; the caller discards whatever it was editing.
func GenerateWithNaming(projectName string, c Counts, naming Naming) *domain.ScopeNode {
	c = c.Clamped()
	root := domain.NewProjectRoot(projectName)
	for i := 0; i < c.Blocks; i++ {
		block := root.AddChild(BlockLabel(i), domain.NodeBlock)
		for j := 0; j < c.Floors; j++ {
			floor := block.AddChild(fmt.Sprintf(naming.FloorFormat, j+1), domain.NodeFloor)
			for k := 0; k < c.FlatsPerFloor; k++ {
				floor.AddChild(fmt.Sprintf(naming.FlatFormat, k+1), domain.NodeFlat)
			}
		}
	}
	return root
}

// Clamped raises every count to at least 1.
func (c Counts) Clamped() Counts {
	return Counts{
		Blocks:        max(c.Blocks, 1),
		Floors:        max(c.Floors, 1),
		FlatsPerFloor: max(c.FlatsPerFloor, 1),
	}
}

// FlatCount is the number of flats Generate produces for c.
func (c Counts) FlatCount() int {
	c = c.Clamped()
	return c.Blocks * c.Floors * c.FlatsPerFloor
}

// NodeCount is the total number of nodes Generate produces for c, root included.
func (c Counts) NodeCount() int {
	c = c.Clamped()
	return 1 + c.Blocks + c.Blocks*c.Floors + c.FlatCount()
}

// BlockLabel maps 0, 1, ..., 25, 26, 27 to A, B, ..., Z, AA, AB (spreadsheet
// column style) so block names stay unique past 26 blocks.
func BlockLabel(i int) string {
	if i < 0 {
		i = 0
	}
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}
