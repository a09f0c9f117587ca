package billing

// SalarySlip is a driver's pay statement for one cycle.
type SalarySlip struct {
	DriverPay
	Cycle  Cycle  `json:"cycle"`
	Period string `json:"period"`
}

// BuildSalarySlip settles the driver's trips. The trips are expected to be
// filtered to the driver and cycle already.
func BuildSalarySlip(driver string, trips []Trip, c Cycle, cn float64) SalarySlip {
	return SalarySlip{
		DriverPay: PayFor(driver, trips, cn),
		Cycle:     c,
		Period:    c.RangeLabel(),
	}
}
