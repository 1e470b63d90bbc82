package core

import "testing"

func TestComputeBreakdownSumsComponents(t *testing.T) {
	b := Bill{
		OldElectricityIndex: 1000,
		NewElectricityIndex: 1120,
		ElectricityPrice:    Money{Dong: 3500},
		OldWaterIndex:       40,
		NewWaterIndex:       55,
		WaterPrice:          Money{Dong: 16000},
		InternetFee:         Money{Dong: 120000},
		Rent:                Money{Dong: 2000000},
	}
	got := ComputeBreakdown(b)

	if got.Electricity.Dong != 420000 {
		t.Fatalf("electricity = %d, want 420000", got.Electricity.Dong)
	}
	if got.Water.Dong != 240000 {
		t.Fatalf("water = %d, want 240000", got.Water.Dong)
	}
	if got.Internet.Dong != 120000 {
		t.Fatalf("internet = %d, want 120000", got.Internet.Dong)
	}
	if got.Rent.Dong != 2000000 {
		t.Fatalf("rent = %d, want 2000000", got.Rent.Dong)
	}
	if got.Total.Dong != 2780000 {
		t.Fatalf("total = %d, want 2780000", got.Total.Dong)
	}
	sum := got.Electricity.Dong + got.Water.Dong + got.Internet.Dong + got.Rent.Dong
	if got.Total.Dong != sum {
		t.Fatalf("total %d does not equal component sum %d", got.Total.Dong, sum)
	}
}

func TestComputeBreakdownIsPure(t *testing.T) {
	b := Bill{
		OldElectricityIndex: 10,
		NewElectricityIndex: 30,
		ElectricityPrice:    Money{Dong: 3000},
		Rent:                Money{Dong: 1500000},
	}
	first := ComputeBreakdown(b)
	second := ComputeBreakdown(b)
	if first != second {
		t.Fatalf("breakdown not stable: %+v vs %+v", first, second)
	}
}

func TestComputeBreakdownNegativeConsumption(t *testing.T) {
	// A new index below the old one is currently allowed; the breakdown
	// simply goes negative.
	b := Bill{
		OldElectricityIndex: 200,
		NewElectricityIndex: 100,
		ElectricityPrice:    Money{Dong: 3000},
	}
	got := ComputeBreakdown(b)
	if got.Electricity.Dong != -300000 {
		t.Fatalf("electricity = %d, want -300000", got.Electricity.Dong)
	}
	if got.Total.Dong != -300000 {
		t.Fatalf("total = %d, want -300000", got.Total.Dong)
	}
}

func TestResolveSettings(t *testing.T) {
	cases := []struct {
		name string
		in   *Settings
		want Settings
	}{
		{
			name: "nil falls back to defaults",
			in:   nil,
			want: Settings{
				ElectricityPrice: Money{Dong: 3000},
				WaterPrice:       Money{Dong: 15000},
				InternetFee:      Money{Dong: 100000},
			},
		},
		{
			name: "zero fields fall back per field",
			in:   &Settings{ElectricityPrice: Money{Dong: 3500}},
			want: Settings{
				ElectricityPrice: Money{Dong: 3500},
				WaterPrice:       Money{Dong: 15000},
				InternetFee:      Money{Dong: 100000},
			},
		},
		{
			name: "fully set snapshot wins",
			in: &Settings{
				ElectricityPrice: Money{Dong: 3500},
				WaterPrice:       Money{Dong: 16000},
				InternetFee:      Money{Dong: 120000},
				CleaningFee:      Money{Dong: 50000},
			},
			want: Settings{
				ElectricityPrice: Money{Dong: 3500},
				WaterPrice:       Money{Dong: 16000},
				InternetFee:      Money{Dong: 120000},
				CleaningFee:      Money{Dong: 50000},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveSettings(tc.in); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
