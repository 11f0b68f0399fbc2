package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

const messyCSV = `country,gender,income_groups,age,year,population
A,1,low_income_typo,20,2125,100
A,1,low_income_typo,,2125,100
B,,high_income,40,1990,
B,,high_income,40,1990,
`

// resetFlags clears values and Changed state left over from earlier runs.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestCLI_CleanWritesOutputs(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "messy.csv", messyCSV)
	outPath := filepath.Join(home, "out", "cleaned.csv")
	repPath := filepath.Join(home, "out", "report.txt")

	stdout := runCmd(t, "clean", in, "-o", outPath, "-r", repPath)

	for _, want := range []string{
		"Removed 1 duplicate rows.",
		"Filled 0 missing 'income_groups' values.",
		"Filled 1 missing 'age' values.",
		"Filled 1 missing 'gender' values.",
		"Filled 0 missing 'year' values.",
		"Filled 1 missing 'population' values.",
		"Corrected 3 rows with income group typos and converted to numeric categories.",
		"Changed -2 rows with years between 2025-2099.",
		"Changed 2 rows with years >=2100.",
		"✓ Saved distribution comparison to " + repPath,
		"✓ Saved cleaned dataset to " + outPath,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read cleaned: %v", err)
	}
	want := `country,gender,income_groups,age,year,population
A,1 (Male?),Low Income,20,2025,100
A,1 (Male?),Low Income,30,2025,100
B,Unknown,High Income,40,1990,100
`
	if string(got) != want {
		t.Fatalf("cleaned dataset:\n%s\nwant:\n%s", got, want)
	}

	rep, err := os.ReadFile(repPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(rep), "--- Data Distribution: Original Dataset (Numerical) ---\n") {
		t.Errorf("report does not start with the original numeric section:\n%s", rep)
	}
	if !strings.Contains(string(rep), "Proportions for gender (Cleaned):") {
		t.Errorf("report missing cleaned gender proportions")
	}
}

func TestCLI_CleanUsesConfiguredPaths(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "messy.tsv", strings.ReplaceAll(messyCSV, ",", "\t"))
	outPath := filepath.Join(home, "cleaned.tsv")
	repPath := filepath.Join(home, "report.txt")

	runCmd(t, "config", "set", "input_path", in)
	runCmd(t, "config", "set", "output_path", outPath)
	runCmd(t, "config", "set", "report_path", repPath)
	runCmd(t, "clean")

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read cleaned: %v", err)
	}
	if !strings.HasPrefix(string(got), "country\tgender\tincome_groups\tage\tyear\tpopulation\n") {
		t.Errorf("tsv output not tab separated:\n%s", got)
	}
}

func TestCLI_CleanXLSXInput(t *testing.T) {
	home := setupHome(t)
	f := excelize.NewFile()
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatal(err)
	}
	for i, line := range strings.Split(strings.TrimSpace(messyCSV), "\n") {
		cells := strings.Split(line, ",")
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Data", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	in := filepath.Join(home, "messy.xlsx")
	if err := f.SaveAs(in); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(home, "cleaned.csv")
	stdout := runCmd(t, "clean", in, "--sheet", "Data", "-o", outPath, "-r", filepath.Join(home, "report.txt"))
	if !strings.Contains(stdout, "Removed 1 duplicate rows.") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("cleaned output missing: %v", err)
	}
}

func TestCLI_CleanSchemaErrorWritesNothing(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "bad.csv", "country,gender,age,year\nA,1,20,2000\n")
	outPath := filepath.Join(home, "cleaned.csv")
	repPath := filepath.Join(home, "report.txt")

	_, err := execCmd(t, "clean", in, "-o", outPath, "-r", repPath)
	var se *dataset.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("want SchemaError, got %v", err)
	}
	for _, p := range []string{outPath, repPath} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s should not exist", p)
		}
	}
}

func TestCLI_CleanTypeError(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "bad.csv", "gender,income_groups,age,year,population\n1,low_income,old,2000,5\n")
	_, err := execCmd(t, "clean", in, "-o", filepath.Join(home, "c.csv"), "-r", filepath.Join(home, "r.txt"))
	var te *dataset.TypeError
	if !errors.As(err, &te) || te.Column != "age" {
		t.Fatalf("want TypeError on age, got %v", err)
	}
}

func TestCLI_CleanRemovesReportWhenDatasetWriteFails(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "messy.csv", messyCSV)
	repPath := filepath.Join(home, "report.txt")
	// A non-empty directory at the output path makes the rename fail.
	outPath := filepath.Join(home, "cleaned.csv")
	if err := os.MkdirAll(filepath.Join(outPath, "child"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := execCmd(t, "clean", in, "-o", outPath, "-r", repPath); err == nil {
		t.Fatalf("expected write failure")
	}
	if _, err := os.Stat(repPath); !os.IsNotExist(err) {
		t.Errorf("report left behind after failed dataset write")
	}
}

func TestCLI_CleanRejectsBadDelimiter(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "messy.csv", messyCSV)
	if _, err := execCmd(t, "clean", in, "--delimiter", "|"); err == nil {
		t.Fatalf("expected delimiter error")
	}
}

func TestCLI_CheckProfilesGlob(t *testing.T) {
	home := setupHome(t)
	for _, d := range []string{"d1", "d2"} {
		if err := os.MkdirAll(filepath.Join(home, d), 0o755); err != nil {
			t.Fatal(err)
		}
		writeInput(t, filepath.Join(home, d), "messy.csv", messyCSV)
	}
	outPath := filepath.Join(home, "profile.txt")
	stdout := runCmd(t, "check", filepath.Join(home, "d*", "messy.csv"), "-o", outPath, "--quiet")
	if !strings.Contains(stdout, "✓ Wrote profile to "+outPath) {
		t.Errorf("unexpected stdout: %s", stdout)
	}
	body, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	if n := strings.Count(string(body), "[DATA INFORMATION]"); n != 2 {
		t.Errorf("want 2 profiles, got %d", n)
	}
	if !strings.Contains(string(body), "[DUPLICATE ROWS]\n1\n") {
		t.Errorf("duplicate count missing:\n%s", body)
	}
	if !strings.Contains(string(body), "income_groups - Proportions:") {
		t.Errorf("proportions missing:\n%s", body)
	}
}

func TestCLI_CheckDoesNotModifyInput(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "messy.csv", messyCSV)
	stdout := runCmd(t, "check", in)
	if !strings.Contains(stdout, "Rows: 4") {
		t.Errorf("unexpected profile:\n%s", stdout)
	}
	b, _ := os.ReadFile(in)
	if string(b) != messyCSV {
		t.Errorf("input changed")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	setupHome(t)
	runCmd(t, "config", "set", "delimiter", ";")
	runCmd(t, "config", "set", "na_values", ",NA,missing")
	runCmd(t, "config", "set", "log_format", "JSON")
	out := runCmd(t, "config", "show")
	for _, want := range []string{
		"input_path: messy_population_data.csv",
		"delimiter: semicolon",
		`na_values: ["", "NA", "missing"]`,
		"log_format: json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
	if _, err := execCmd(t, "config", "set", "log_level", "loud"); err == nil {
		t.Errorf("expected validation error for log_level")
	}
	if _, err := execCmd(t, "config", "set", "colour", "blue"); err == nil {
		t.Errorf("expected unknown key error")
	}
}

func TestCLI_LogFormatFlagOverridesConfig(t *testing.T) {
	home := setupHome(t)
	in := writeInput(t, home, "messy.csv", messyCSV)
	runCmd(t, "config", "set", "log_format", "text")

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--log-format", "json", "clean", in,
		"-o", filepath.Join(home, "c.csv"), "-r", filepath.Join(home, "r.txt")})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(errOut.String(), `"msg":"removed duplicate rows"`) {
		t.Errorf("expected JSON log lines, got:\n%s", errOut.String())
	}
	if !strings.Contains(errOut.String(), `"run_id":"`) {
		t.Errorf("log lines missing run_id:\n%s", errOut.String())
	}

	if _, err := execCmd(t, "--log-format", "xml", "config", "show"); err == nil {
		t.Errorf("expected invalid log format error")
	}
}
