package payroll

import (
	"bytes"
	"fmt"
	"time"

	"go-hrms/internal/company"
	"go-hrms/internal/employee"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func buildPayslipPDF(comp *company.Company, empl *employee.Employee, row *MonthlyPayroll) ([]byte, error) {
	paidDays := decimal.NewFromInt(int64(daysInMonth(row.Month, row.Year))).Sub(row.LOPDays)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("PAYSLIP - %d/%d", row.Month, row.Year), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, comp.Name, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	info := [][2]string{
		{"Employee ID", empl.EmployeeNumber},
		{"Name", empl.FullName},
		{"Designation", empl.Designation},
		{"Bank Account", empl.BankAccountNumber},
		{"Paid Days", paidDays.String()},
		{"LOP Days", row.LOPDays.String()},
	}
	for _, kv := range info {
		pdf.CellFormat(40, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, ": "+kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 8, "Earnings", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, "Deductions", "1", 1, "C", false, 0, "")

	earnings := [][2]string{
		{"Basic", row.Basic.StringFixed(2)},
		{"DA", row.DA.StringFixed(2)},
		{"HRA", row.HRA.StringFixed(2)},
		{"Conveyance", row.Conveyance.StringFixed(2)},
		{"Medical Allowance", row.MedicalAllowance.StringFixed(2)},
		{"Special Allowance", row.SpecialAllowance.StringFixed(2)},
	}
	deductions := [][2]string{
		{"PF", row.PF.StringFixed(2)},
		{"ESI", row.ESI.StringFixed(2)},
	}

	pdf.SetFont("Arial", "", 10)
	maxRows := len(earnings)
	if len(deductions) > maxRows {
		maxRows = len(deductions)
	}
	for i := 0; i < maxRows; i++ {
		var eName, eAmt, dName, dAmt string
		if i < len(earnings) {
			eName, eAmt = earnings[i][0], earnings[i][1]
		}
		if i < len(deductions) {
			dName, dAmt = deductions[i][0], deductions[i][1]
		}
		pdf.CellFormat(60, 6, eName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, eAmt, "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 6, dName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, dAmt, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, "Total Earnings", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, row.TotalEarnings.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, row.TotalDeductions.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 8, "Gross Pay: "+row.GrossSalary.StringFixed(2), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, "Net Pay: "+row.NetPay.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
