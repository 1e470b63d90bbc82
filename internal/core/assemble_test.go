package core

import (
	"errors"
	"testing"
)

func TestAssembleBillMissingFields(t *testing.T) {
	form := BillForm{TenantID: "t1", Month: "2024-03"}
	_, err := AssembleBill(form, nil)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "roomId" {
		t.Fatalf("fields = %v, want [roomId]", verr.Fields)
	}
}

func TestAssembleBillNamesEveryMissingField(t *testing.T) {
	_, err := AssembleBill(BillForm{}, nil)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"tenantId", "roomId", "month"}
	if len(verr.Fields) != len(want) {
		t.Fatalf("fields = %v, want %v", verr.Fields, want)
	}
	for i, f := range want {
		if verr.Fields[i] != f {
			t.Fatalf("fields = %v, want %v", verr.Fields, want)
		}
	}
}

func TestAssembleBillMalformedMonth(t *testing.T) {
	form := BillForm{TenantID: "t1", RoomID: "r1", Month: "tháng ba"}
	if _, err := AssembleBill(form, nil); err == nil {
		t.Fatal("expected validation error for malformed month")
	}
}

func TestAssembleBillNormalizesMonth(t *testing.T) {
	form := BillForm{TenantID: "t1", RoomID: "r1", Month: "2024-03-15"}
	bill, err := AssembleBill(form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.Month.String() != "2024-03" {
		t.Fatalf("month = %q, want 2024-03", bill.Month.String())
	}
}

func TestAssembleBillCoercesNumericFields(t *testing.T) {
	form := BillForm{
		TenantID:            "t1",
		RoomID:              "r1",
		Month:               "2024-03",
		OldElectricityIndex: "not a number",
		NewElectricityIndex: "",
		Rent:                "2000000",
	}
	bill, err := AssembleBill(form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.OldElectricityIndex != 0 || bill.NewElectricityIndex != 0 {
		t.Fatalf("indices should coerce to zero, got %d/%d", bill.OldElectricityIndex, bill.NewElectricityIndex)
	}
	if bill.Rent.Dong != 2000000 {
		t.Fatalf("rent = %d, want 2000000", bill.Rent.Dong)
	}
}

func TestAssembleBillRecomputesTotal(t *testing.T) {
	settings := &Settings{
		ElectricityPrice: Money{Dong: 3500},
		WaterPrice:       Money{Dong: 16000},
		InternetFee:      Money{Dong: 120000},
	}
	form := BillForm{
		TenantID:            "t1",
		RoomID:              "r1",
		Month:               "2024-03",
		OldElectricityIndex: "1000",
		NewElectricityIndex: "1120",
		OldWaterIndex:       "40",
		NewWaterIndex:       "55",
		Rent:                "2000000",
	}
	bill, err := AssembleBill(form, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.Total.Dong != 2780000 {
		t.Fatalf("total = %d, want 2780000", bill.Total.Dong)
	}
	if bill.ElectricityPrice.Dong != 3500 || bill.WaterPrice.Dong != 16000 {
		t.Fatalf("unit prices not copied from settings: %+v", bill)
	}
	// The write path and the read path must agree exactly.
	if got := ComputeBreakdown(bill).Total; got != bill.Total {
		t.Fatalf("list-view total %d disagrees with submitted total %d", got.Dong, bill.Total.Dong)
	}
}

func TestAssembleBillDefaultsStatusAndPrices(t *testing.T) {
	form := BillForm{TenantID: "t1", RoomID: "r1", Month: "2024-03"}
	bill, err := AssembleBill(form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.Status != BillUnpaid {
		t.Fatalf("status = %q, want unpaid", bill.Status)
	}
	if bill.ElectricityPrice.Dong != DefaultElectricityPrice {
		t.Fatalf("electricity price = %d, want default", bill.ElectricityPrice.Dong)
	}
	if bill.Total.Dong != DefaultInternetFee {
		t.Fatalf("total = %d, want internet fee only", bill.Total.Dong)
	}
}

func TestFormFromBillRoundTrip(t *testing.T) {
	bill := Bill{
		ID:                  "b1",
		TenantID:            "t1",
		RoomID:              "r1",
		Month:               NewMonth(2024, 3),
		OldElectricityIndex: 1000,
		NewElectricityIndex: 1120,
		Rent:                Money{Dong: 2000000},
		Status:              BillPaid,
		Note:                "đã chuyển khoản",
	}
	form := FormFromBill(bill)
	if form.Month != "2024-03" || form.OldElectricityIndex != "1000" || form.Rent != "2000000" {
		t.Fatalf("form = %+v", form)
	}
	if form.Status != "paid" {
		t.Fatalf("status = %q, want paid", form.Status)
	}
}
