package domain

import "testing"

func TestAddress_States(t *testing.T) {
	t.Parallel()

	lekki := Place{Label: "Lekki Phase 1", Coordinates: Coordinates{Lat: 6.4474, Lng: 3.4723}}

	testCases := []struct {
		name      string
		addr      Address
		wantState AddressState
		wantCoord bool
	}{
		{name: "typed only", addr: NewAddress("Lekki"), wantState: AddressUnresolved},
		{name: "resolved", addr: ResolvedAddress(lekki), wantState: AddressResolved, wantCoord: true},
		{name: "edited after resolve", addr: ResolvedAddress(lekki).Edit("Lekki Phase 2"), wantState: AddressEdited},
		{name: "edited back to label", addr: ResolvedAddress(lekki).Edit("x").Edit("Lekki Phase 1"), wantState: AddressResolved, wantCoord: true},
		{name: "resolve replaces edit", addr: NewAddress("lek").Resolve(lekki), wantState: AddressResolved, wantCoord: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.addr.State(); got != tc.wantState {
				t.Errorf("expected state %s, got %s", tc.wantState, got)
			}
			coords, ok := tc.addr.Coordinates()
			if ok != tc.wantCoord {
				t.Fatalf("expected coordinates present=%v, got %v", tc.wantCoord, ok)
			}
			if ok && coords != lekki.Coordinates {
				t.Errorf("expected %+v, got %+v", lekki.Coordinates, coords)
			}
		})
	}
}

func TestAddress_EditDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	orig := ResolvedAddress(Place{Label: "Ikeja", Coordinates: Coordinates{Lat: 6.6, Lng: 3.35}})
	_ = orig.Edit("Ikeja GRA")

	if orig.State() != AddressResolved {
		t.Errorf("expected original to stay resolved, got %s", orig.State())
	}
}
