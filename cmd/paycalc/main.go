package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	payrollService "github.com/cmlabs-hris/timecard-payroll-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "paycalc",
		Short:         "Offline hourly payroll calculator",
		Long:          "paycalc computes weekly pay and 주휴수당 for a month of shifts without running the API server.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.SetOut(out)

	rootCmd.AddCommand(newCalculateCmd())
	rootCmd.AddCommand(newMinimumWageCmd())
	return rootCmd
}

func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate a month of payroll from a shifts JSON file",
		RunE:  runCalculate,
	}

	now := time.Now()
	cmd.Flags().String("file", "", "JSON file holding an array of shifts")
	cmd.Flags().Int("year", now.Year(), "Target year")
	cmd.Flags().Int("month", int(now.Month()), "Target month (1-12)")
	cmd.Flags().String("wage", "", "Hourly wage in won (defaults to the statutory minimum for the year)")
	cmd.Flags().Int("threshold", 480, "Break policy threshold in minutes; applied only when set")
	cmd.Flags().Int("deduction", 60, "Break policy deduction in minutes")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newMinimumWageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minimum-wage",
		Short: "Print the statutory minimum hourly wage for a year",
		RunE:  runMinimumWage,
	}
	cmd.Flags().Int("year", time.Now().Year(), "Year")
	return cmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")
	wageFlag, _ := cmd.Flags().GetString("wage")

	shifts, err := readShifts(path)
	if err != nil {
		return err
	}

	wage := payrollService.DefaultHourlyWage(year)
	if wageFlag != "" {
		wage, err = decimal.NewFromString(wageFlag)
		if err != nil {
			return fmt.Errorf("invalid --wage %q: %w", wageFlag, err)
		}
	}

	req := payroll.CalculatePayrollRequest{
		Year:       year,
		Month:      month,
		HourlyWage: wage,
		Shifts:     shifts,
	}
	if cmd.Flags().Changed("threshold") || cmd.Flags().Changed("deduction") {
		threshold, _ := cmd.Flags().GetInt("threshold")
		deduction, _ := cmd.Flags().GetInt("deduction")
		req.BreakPolicy = &payroll.BreakPolicy{ThresholdMinutes: threshold, DeductionMinutes: deduction}
	}

	svc := payrollService.NewPayrollService(nil, "")
	result, err := svc.Calculate(context.Background(), req)
	if err != nil {
		return err
	}

	printPayroll(cmd.OutOrStdout(), result)
	return nil
}

func runMinimumWage(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")

	svc := payrollService.NewPayrollService(nil, "")
	result, err := svc.GetMinimumWage(context.Background(), year)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d년 최저시급: %d원\n", result.Year, result.MinimumWage)
	return nil
}

func readShifts(path string) ([]payroll.Shift, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shifts file: %w", err)
	}
	var shifts []payroll.Shift
	if err := json.Unmarshal(data, &shifts); err != nil {
		return nil, fmt.Errorf("parsing shifts file: %w", err)
	}
	return shifts, nil
}

func printPayroll(out io.Writer, result payroll.CalculatePayrollResponse) {
	fmt.Fprintf(out, "%d년 %d월 (시급 %s원)\n\n", result.Year, result.Month, result.HourlyWage.String())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "주차\t기간\t근무시간\t주휴시간\t기본급\t주휴수당\t합계")
	for _, w := range result.Summaries {
		fmt.Fprintf(tw, "%d주차\t%s ~ %s\t%s\t%s\t%d\t%d\t%d\n",
			w.WeekNumber,
			w.StartDate, w.EndDate,
			payrollService.FormatMinutesToHM(w.ActualWorkingMinutes),
			payrollService.FormatMinutesToHM(w.WeeklyHolidayAllowanceMinutes),
			w.BasePay,
			w.WeeklyHolidayAllowance,
			w.TotalWeeklyPay,
		)
	}
	tw.Flush()

	fmt.Fprintf(out, "\n총 지급액: %d원\n", result.GrandTotalPay)
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "경고: %s\n", warning)
	}
}
