package payroll

import (
	"bytes"
	"fmt"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// buildPayrollXLSX renders a bank-transfer sheet for one period.
func buildPayrollXLSX(rows []MonthlyPayroll, employees map[uuid.UUID]*employee.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	headers := []string{"Sl.No", "Employee Name", "Account Number", "Account Type", "Net Pay Amount"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	total := decimal.Zero
	for i, row := range rows {
		var name, account, accountType string
		if empl, ok := employees[row.EmployeeID]; ok {
			name = empl.FullName
			account = empl.BankAccountNumber
			accountType = empl.BankAccountType
		}

		values := []any{i + 1, name, account, accountType, row.NetPay.StringFixed(2)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}

		total = total.Add(row.NetPay)
	}

	totalRow := len(rows) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), total.StringFixed(2)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
