//
//  Copyright © Manetu Inc. All rights reserved.
//

package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xbrldq/dqengine/pkg/filing"
)

func TestLoad_V1(t *testing.T) {
	// Create a temporary v1 filing interchange file
	content := `apiVersion: dqengine.xbrldq.io/v1
kind: Filing
schemas:
  - "http://xbrl.sec.gov/dei/2023"
  - "http://fasb.org/us-gaap/2023-01-31"
concepts:
  - namespace: "http://fasb.org/us-gaap/2023-01-31"
    name: Assets
    prefix: us-gaap
    label: Assets
    balance: debit
    periodType: instant
    numeric: true
  - namespace: "http://fasb.org/us-gaap/2023-01-31"
    name: AssetsCurrent
    prefix: us-gaap
    label: "Assets, Current"
    balance: debit
    periodType: instant
    numeric: true
  - namespace: "http://fasb.org/us-gaap/2023-01-31"
    name: StatementScenarioAxis
    prefix: us-gaap
    label: "Scenario [Axis]"
    dimension: true
  - namespace: "http://fasb.org/us-gaap/2023-01-31"
    name: ScenarioForecastMember
    prefix: us-gaap
    label: "Forecast [Member]"
dimensionDefaults:
  - axis:
      namespace: "http://fasb.org/us-gaap/2023-01-31"
      name: StatementScenarioAxis
    member:
      namespace: "http://fasb.org/us-gaap/2023-01-31"
      name: ScenarioForecastMember
networks:
  - kind: calculation
    role: "http://example.com/role/BalanceSheet"
    relationships:
      - source:
          namespace: "http://fasb.org/us-gaap/2023-01-31"
          name: Assets
        target:
          namespace: "http://fasb.org/us-gaap/2023-01-31"
          name: AssetsCurrent
        weight: 1.0
        order: 1.0
contexts:
  - id: i-2023
    entity: "0000012345"
    instant: "2023-12-31"
  - id: i-2023-forecast
    entity: "0000012345"
    instant: "2023-12-31"
    dimensions:
      - axis:
          namespace: "http://fasb.org/us-gaap/2023-01-31"
          name: StatementScenarioAxis
        member:
          namespace: "http://fasb.org/us-gaap/2023-01-31"
          name: ScenarioForecastMember
facts:
  - concept:
      namespace: "http://fasb.org/us-gaap/2023-01-31"
      name: Assets
    context: i-2023
    value: "1000000"
    decimals: -3
    unit:
      numerator:
        - "iso4217:USD"
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "filing.yml")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	f, err := Load(tmpFile)
	require.NoError(t, err)

	gaap := "http://fasb.org/us-gaap/2023-01-31"
	require.Len(t, f.DTS.Schemas(), 2)
	assert.Equal(t, "http://xbrl.sec.gov/dei/2023", f.DTS.Schemas()[0].TargetNamespace)
	assert.Equal(t, gaap, f.DTS.Schemas()[1].TargetNamespace)

	assets := f.DTS.ResolveConcept(filing.NewQName(gaap, "Assets"))
	require.NotNil(t, assets)
	assert.Equal(t, filing.BalanceDebit, assets.Balance)
	assert.True(t, assets.Numeric)

	axis := f.DTS.ResolveConcept(filing.NewQName(gaap, "StatementScenarioAxis"))
	require.NotNil(t, axis)
	assert.True(t, axis.Dimension)
	def := f.DTS.DefaultMember(filing.NewQName(gaap, "StatementScenarioAxis"))
	require.NotNil(t, def)
	assert.Equal(t, "ScenarioForecastMember", def.Name.Local)

	require.Equal(t, []string{"http://example.com/role/BalanceSheet"}, f.DTS.Roles(filing.CalculationNetwork))
	network := f.DTS.Network(filing.CalculationNetwork, "http://example.com/role/BalanceSheet")
	require.NotNil(t, network)
	require.Len(t, network.Relationships(), 1)
	rel := network.Relationships()[0]
	assert.Equal(t, "Assets", rel.Source.Name.Local)
	assert.Equal(t, "AssetsCurrent", rel.Target.Name.Local)
	assert.Equal(t, 1.0, rel.Weight)

	require.Len(t, f.Contexts, 2)
	assert.Len(t, f.Contexts["i-2023-forecast"].Dimensions, 1)

	require.Equal(t, 1, f.Facts.Len())
	fact := f.Facts.All()[0]
	assert.Equal(t, "1000000", fact.Value)
	require.NotNil(t, fact.Decimals)
	assert.Equal(t, -3, *fact.Decimals)
	assert.Equal(t, "iso4217:USD", fact.Unit.String())
}

func TestParse_UndefinedConcept(t *testing.T) {
	content := `apiVersion: dqengine.xbrldq.io/v1
kind: Filing
contexts:
  - id: c1
    entity: e
    instant: "2023-12-31"
facts:
  - concept:
      namespace: "http://fasb.org/us-gaap/2023-01-31"
      name: Assets
    context: c1
    value: "1"
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined concept")
}

func TestParse_UnknownContext(t *testing.T) {
	content := `apiVersion: dqengine.xbrldq.io/v1
kind: Filing
concepts:
  - namespace: "http://fasb.org/us-gaap/2023-01-31"
    name: Assets
facts:
  - concept:
      namespace: "http://fasb.org/us-gaap/2023-01-31"
      name: Assets
    context: missing
    value: "1"
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown context")
}

func TestParse_ContextWithoutPeriod(t *testing.T) {
	content := `apiVersion: dqengine.xbrldq.io/v1
kind: Filing
contexts:
  - id: c1
    entity: e
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither instant nor start/end")
}

func TestParse_DuplicateContext(t *testing.T) {
	content := `apiVersion: dqengine.xbrldq.io/v1
kind: Filing
contexts:
  - id: c1
    entity: e
    instant: "2023-12-31"
  - id: c1
    entity: e
    instant: "2023-06-30"
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate context id")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/filing.yml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "invalid.yml")
	err := os.WriteFile(tmpFile, []byte("invalid: yaml: content:"), 0644)
	require.NoError(t, err)

	_, err = Load(tmpFile)
	assert.Error(t, err)
}

func TestLoad_WrongKind(t *testing.T) {
	content := `apiVersion: dqengine.xbrldq.io/v1
kind: NotAFiling
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "wrong-kind.yml")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected Filing")
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	content := `apiVersion: dqengine.xbrldq.io/v999
kind: Filing
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "unsupported.yml")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported Filing API Version")
}

func TestLoad_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "empty.yml")
	err := os.WriteFile(tmpFile, []byte(""), 0644)
	require.NoError(t, err)

	_, err = Load(tmpFile)
	assert.Error(t, err)
}
