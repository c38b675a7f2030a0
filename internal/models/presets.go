package models

import "github.com/yasinhessnawi1/QRForge_Backend/internal/constants"

// Preset is a named pair of colors.
type Preset struct {
	Name       string `json:"name"`
	DarkColor  string `json:"darkColor"`
	LightColor string `json:"lightColor"`
}

// presets is ordered as presented in the UI
var presets = []Preset{
	{Name: constants.PresetClassic, DarkColor: "#000000", LightColor: "#ffffff"},
	{Name: constants.PresetColorful, DarkColor: "#667eea", LightColor: "#e0e7ff"},
	{Name: constants.PresetNeon, DarkColor: "#ff006e", LightColor: "#ffbe0b"},
	{Name: constants.PresetPastel, DarkColor: "#d4a5ff", LightColor: "#fff5f7"},
}

// Presets returns a copy of the built-in presets.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name. Names are case-sensitive.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// SizePreset is a named image edge length in pixels.
type SizePreset struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

var sizePresets = []SizePreset{
	{Name: constants.SizePresetSmall, Size: 200},
	{Name: constants.SizePresetMedium, Size: constants.DefaultSize},
	{Name: constants.SizePresetLarge, Size: 500},
}

// SizePresets returns a copy of the built-in size presets, smallest first.
func SizePresets() []SizePreset {
	out := make([]SizePreset, len(sizePresets))
	copy(out, sizePresets)
	return out
}

// LookupSizePreset finds a size preset by name.
func LookupSizePreset(name string) (SizePreset, bool) {
	for _, p := range sizePresets {
		if p.Name == name {
			return p, true
		}
	}
	return SizePreset{}, false
}
