// Package testdata holds recorded hand landmark fixtures shared by tests.
package testdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

//go:embed hands/*.json
var handsFS embed.FS

// Fixture is one recorded hand and the gesture it is expected to classify as.
type Fixture struct {
	Name  string
	Label gesture.Label
	Hand  detector.HandLandmarks
}

type fixtureFile struct {
	Label      string             `json:"label"`
	Handedness string             `json:"handedness"`
	Score      float64            `json:"score"`
	Points     []detector.Point3D `json:"points"`
}

// LoadHand loads a fixture by name, without the .json extension.
func LoadHand(name string) (Fixture, error) {
	data, err := handsFS.ReadFile("hands/" + name + ".json")
	if err != nil {
		return Fixture{}, fmt.Errorf("load hand %s: %w", name, err)
	}

	var f fixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("decode hand %s: %w", name, err)
	}

	hand, err := detector.FromPoints(f.Points)
	if err != nil {
		return Fixture{}, fmt.Errorf("hand %s: %w", name, err)
	}
	hand.Handedness = f.Handedness
	hand.Score = f.Score

	label, err := gesture.ParseLabel(f.Label)
	if err != nil {
		return Fixture{}, fmt.Errorf("hand %s: %w", name, err)
	}

	return Fixture{Name: name, Label: label, Hand: hand}, nil
}

// AllHands loads every fixture, sorted by name.
func AllHands() ([]Fixture, error) {
	entries, err := handsFS.ReadDir("hands")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)

	fixtures := make([]Fixture, 0, len(names))
	for _, name := range names {
		f, err := LoadHand(name)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// BlankFrame returns a black BGR frame of the given size. The caller closes it.
func BlankFrame(width, height int) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)
	return &mat
}
