package payroll

import "github.com/shopspring/decimal"

// Statutory split ratios and fixed allowances.
var (
	basicRate      = decimal.NewFromFloat(0.40)
	daRate         = decimal.NewFromFloat(0.10)
	hraRate        = decimal.NewFromFloat(0.40)
	pfRate         = decimal.NewFromFloat(0.12)
	esiRate        = decimal.NewFromFloat(0.0075)
	conveyanceAmt  = decimal.NewFromInt(1600)
	medicalAmt     = decimal.NewFromInt(1250)
	lopDivisorDays = decimal.NewFromInt(30)
)

type Breakdown struct {
	AdjustedGross    decimal.Decimal
	Basic            decimal.Decimal
	DA               decimal.Decimal
	HRA              decimal.Decimal
	Conveyance       decimal.Decimal
	MedicalAllowance decimal.Decimal
	SpecialAllowance decimal.Decimal
	PF               decimal.Decimal
	ESI              decimal.Decimal
	TotalEarnings    decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetPay           decimal.Decimal
}

// ComputeBreakdown splits a monthly gross into the component structure.
// Unpaid days are charged at a flat 1/30 of gross regardless of calendar
// month length. Every monetary field is rounded to two decimals; the special
// allowance absorbs the per-component rounding remainder (and may go negative
// for low gross amounts), so the earning components always sum exactly to the
// adjusted gross and net pay equals earnings minus deductions.
func ComputeBreakdown(gross, lopDays decimal.Decimal) Breakdown {
	adjusted := gross
	if lopDays.IsPositive() {
		perDay := gross.Div(lopDivisorDays)
		adjusted = gross.Sub(perDay.Mul(lopDays))
	}

	basic := round2(adjusted.Mul(basicRate))
	da := round2(adjusted.Mul(daRate))
	base := basic.Add(da)
	hra := round2(base.Mul(hraRate))
	pf := round2(base.Mul(pfRate))
	esi := round2(base.Mul(esiRate))

	adjusted = round2(adjusted)
	special := adjusted.Sub(base).Sub(hra).Sub(conveyanceAmt).Sub(medicalAmt)

	totalEarnings := basic.Add(da).Add(hra).Add(conveyanceAmt).Add(medicalAmt).Add(special)
	totalDeductions := pf.Add(esi)

	return Breakdown{
		AdjustedGross:    adjusted,
		Basic:            basic,
		DA:               da,
		HRA:              hra,
		Conveyance:       conveyanceAmt,
		MedicalAllowance: medicalAmt,
		SpecialAllowance: special,
		PF:               pf,
		ESI:              esi,
		TotalEarnings:    totalEarnings,
		TotalDeductions:  totalDeductions,
		NetPay:           totalEarnings.Sub(totalDeductions),
	}
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
