// Package deterministicmaplint is a golangci-lint plugin reporting range loops over built-in maps
// in state machine packages, where iteration order must not depend on the Go runtime.
package deterministicmaplint

import (
	"go/ast"
	"go/types"
	"strings"

	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"
)

const mapTypeName = "Map"

func init() {
	register.Plugin("deterministicmaplint", New)
}

// LinterSettings configures the linter.
type LinterSettings struct {
	// Packages limits reporting to packages whose import path contains one of the entries.
	// All packages are checked when empty.
	Packages []string `json:"packages"`
}

// PluginDeterministicMapLint is the linter plugin.
type PluginDeterministicMapLint struct {
	settings LinterSettings
}

// New returns a new linter plugin.
func New(settings any) (register.LinterPlugin, error) {
	s, err := register.DecodeSettings[LinterSettings](settings)
	if err != nil {
		return nil, err
	}

	return &PluginDeterministicMapLint{settings: s}, nil
}

// BuildAnalyzers returns the analyzers for the linter.
func (f *PluginDeterministicMapLint) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{
		{
			Name: "deterministicmaplint",
			Doc:  "Disallow ranging over built-in maps; enforce deterministicmap.Map",
			Run:  f.run,
		},
	}, nil
}

// GetLoadMode returns the load mode for the linter.
func (f *PluginDeterministicMapLint) GetLoadMode() string {
	return register.LoadModeTypesInfo
}

func (f *PluginDeterministicMapLint) run(pass *analysis.Pass) (any, error) {
	if !f.checked(pass.Pkg.Path()) {
		return nil, nil //nolint:nilnil
	}

	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			rs, isRange := n.(*ast.RangeStmt)
			if !isRange {
				return true
			}
			if t := pass.TypesInfo.TypeOf(rs.X); t != nil && isBuiltinMap(t) {
				pass.Reportf(
					rs.Pos(),
					"ranging over map is forbidden (iteration order is nondeterministic); use deterministicmap.Map instead",
				)
			}
			return true
		})
	}

	return nil, nil //nolint:nilnil
}

func (f *PluginDeterministicMapLint) checked(pkgPath string) bool {
	if len(f.settings.Packages) == 0 {
		return true
	}
	for _, p := range f.settings.Packages {
		if strings.Contains(pkgPath, p) {
			return true
		}
	}
	return false
}

func isBuiltinMap(t types.Type) bool {
	for {
		switch tt := t.(type) {
		case *types.Named:
			if obj := tt.Obj(); obj != nil && obj.Name() == mapTypeName && obj.Pkg() != nil &&
				strings.HasSuffix(obj.Pkg().Path(), "deterministicmap") {
				return false
			}
			t = tt.Underlying()
		case *types.Alias:
			t = types.Unalias(tt)
		case *types.Map:
			return true
		default:
			return false
		}
	}
}
