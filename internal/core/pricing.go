package core

// Unit price defaults applied whenever settings are not yet loaded or a
// price is unset. Values are đồng per kWh, per m³, and per month.
const (
	DefaultElectricityPrice = 3000
	DefaultWaterPrice       = 15000
	DefaultInternetFee      = 100000
)

// DefaultSettings returns the pricing record used before the singleton
// settings resource has ever been written.
func DefaultSettings() Settings {
	return Settings{
		ElectricityPrice: Money{Dong: DefaultElectricityPrice},
		WaterPrice:       Money{Dong: DefaultWaterPrice},
		InternetFee:      Money{Dong: DefaultInternetFee},
	}
}

// ResolveSettings applies per-field default fallbacks to a possibly nil or
// partially filled settings snapshot. Resolution never blocks on a load.
func ResolveSettings(s *Settings) Settings {
	out := DefaultSettings()
	if s == nil {
		return out
	}
	if s.ElectricityPrice.Dong > 0 {
		out.ElectricityPrice = s.ElectricityPrice
	}
	if s.WaterPrice.Dong > 0 {
		out.WaterPrice = s.WaterPrice
	}
	if s.InternetFee.Dong > 0 {
		out.InternetFee = s.InternetFee
	}
	out.CleaningFee = s.CleaningFee
	return out
}

// Breakdown is the itemized decomposition of a bill's total.
type Breakdown struct {
	Electricity Money
	Water       Money
	Internet    Money
	Rent        Money
	Total       Money
}

// ComputeBreakdown derives the cost breakdown from a bill's meter readings
// and its copied unit prices. It is pure: the same bill always yields the
// same breakdown. Both the list view and the submission path go through
// this function, so read and write totals agree exactly.
func ComputeBreakdown(b Bill) Breakdown {
	electricity := b.ElectricityPrice.MulUnits(b.NewElectricityIndex - b.OldElectricityIndex)
	water := b.WaterPrice.MulUnits(b.NewWaterIndex - b.OldWaterIndex)
	return Breakdown{
		Electricity: electricity,
		Water:       water,
		Internet:    b.InternetFee,
		Rent:        b.Rent,
		Total:       electricity.Add(water).Add(b.InternetFee).Add(b.Rent),
	}
}
