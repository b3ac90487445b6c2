// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Provenance names the dataset a record came from.
type Provenance string

const (
	SourceIAEA     Provenance = "iaea"
	SourceNUBASE   Provenance = "nubase"
	SourceFRDM     Provenance = "frdm"
	SourceWS36     Provenance = "ws36"
	SourceFRDMQRPA Provenance = "frdm+qrpa"
)

// Key identifies a ground-state nuclide by proton and neutron number.
type Key struct {
	Z int `json:"Z" yaml:"Z"`
	N int `json:"N" yaml:"N"`
}

// A returns the mass number.
func (k Key) A() int {
	return k.Z + k.N
}

// Offset returns the key shifted by dz protons and dn neutrons.
func (k Key) Offset(dz, dn int) Key {
	return Key{Z: k.Z + dz, N: k.N + dn}
}

func (k Key) String() string {
	return fmt.Sprintf("(Z=%d, N=%d)", k.Z, k.N)
}

// Branch is a delayed-neutron emission probability with its uncertainties.
// UncHigh is the upper side of an asymmetric uncertainty.
type Branch struct {
	Prob    Quantity `json:"P" yaml:"P"`
	Unc     Quantity `json:"dP" yaml:"dP"`
	UncHigh Quantity `json:"dPhi" yaml:"dPhi"`
}

// Nuclide is a single nuclide record. Which fields are available depends on
// the source table; unavailable fields hold an unavailable Quantity.
type Nuclide struct {
	Key    `yaml:",inline"`
	Symbol string `json:"EL" yaml:"EL"`

	// BindingEnergy is the total binding energy in MeV.
	BindingEnergy Quantity `json:"Ebind" yaml:"Ebind"`

	// MassExcess is the (theoretical for model tables) mass excess in MeV.
	MassExcess Quantity `json:"Mth" yaml:"Mth"`

	// MassExcessExp is the experimental mass excess in MeV, when the table has one.
	MassExcessExp Quantity `json:"Mexp" yaml:"Mexp"`

	// HalfLife and its uncertainties are in seconds.
	HalfLife        Quantity `json:"T12" yaml:"T12"`
	HalfLifeUnc     Quantity `json:"dT12" yaml:"dT12"`
	HalfLifeUncHigh Quantity `json:"dT12hi" yaml:"dT12hi"`

	// Stable is set for nuclides the table lists as stable.
	Stable bool `json:"stable,omitempty" yaml:"stable,omitempty"`

	// DecayModes is the raw decay-mode annotation, e.g. "B-=100;B-n=12.3 4".
	DecayModes string `json:"decay_modes,omitempty" yaml:"decay_modes,omitempty"`

	P0n Branch `json:"P0n" yaml:"P0n"`
	P1n Branch `json:"P1n" yaml:"P1n"`
	P2n Branch `json:"P2n" yaml:"P2n"`
	P3n Branch `json:"P3n" yaml:"P3n"`

	Source Provenance `json:"source" yaml:"source"`
}

// Derived is a nuclide with separation energies and beta-decay Q-values
// computed against its neighbors in the same table. Energies are in MeV.
type Derived struct {
	Nuclide `yaml:",inline"`

	S1n Quantity `json:"S1n" yaml:"S1n"`
	S2n Quantity `json:"S2n" yaml:"S2n"`
	S1p Quantity `json:"S1p" yaml:"S1p"`
	S2p Quantity `json:"S2p" yaml:"S2p"`
	Qb  Quantity `json:"Qb" yaml:"Qb"`
	Qbn Quantity `json:"Qbn" yaml:"Qbn"`
}

// Origin tells whether a merged record came from the reference table or
// was accepted as a complement.
type Origin string

const (
	OriginReference  Origin = "reference"
	OriginComplement Origin = "complement"
)

// MergedRecord is the record that won a merge pass. Source names the
// winning dataset.
type MergedRecord struct {
	Nuclide `yaml:",inline"`
	Origin  Origin `json:"origin" yaml:"origin"`
}

// Index maps keys to records for constant-time neighbor and match lookups.
// When a table holds the same key twice, the first record wins.
type Index map[Key]Nuclide

// NewIndex builds an Index over records.
func NewIndex(records []Nuclide) Index {
	ix := make(Index, len(records))
	for _, r := range records {
		if _, ok := ix[r.Key]; ok {
			continue
		}
		ix[r.Key] = r
	}
	return ix
}

// Lookup returns the record stored under k.
func (ix Index) Lookup(k Key) (Nuclide, bool) {
	r, ok := ix[k]
	return r, ok
}

// Has reports whether k is present.
func (ix Index) Has(k Key) bool {
	_, ok := ix[k]
	return ok
}
