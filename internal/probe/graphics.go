package probe

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// wddm2MinBuild is the first Windows build shipping WDDM 2.0.
const wddm2MinBuild = 10586

// Graphics reports the DirectX and WDDM levels from a dxdiag text export.
// dxdiag writes its report asynchronously, so the export is awaited within
// the host's wait policy. When it yields nothing, the presence of d3d12.dll
// implies DirectX 12 and a recent OS build implies WDDM 2.0.
func (p *Prober) Graphics(ctx context.Context) (GraphicsFact, error) {
	fact, dxErr := p.dxdiag(ctx)
	if dxErr != nil {
		p.logger().Debug("dxdiag unavailable, using fallbacks", slog.String("error", dxErr.Error()))
	}
	if fact.DirectXVersion > 0 && fact.WDDMVersion > 0 {
		return fact, nil
	}

	usedFallback := false
	if fact.DirectXVersion == 0 && p.host.FileExists(p.d3d12Path()) {
		fact.DirectXVersion = 12
		usedFallback = true
	}
	if fact.WDDMVersion == 0 {
		if build, ok := p.currentBuild(); ok && build >= wddm2MinBuild {
			fact.WDDMVersion = 2.0
			usedFallback = true
		}
	}
	if usedFallback {
		fact.Source = GraphicsSourceFallback
	}

	if fact.DirectXVersion == 0 && fact.WDDMVersion == 0 {
		e := ccerrors.ProbeError(ccerrors.ErrCodeProbeNoSignal, "dxdiag",
			"no DirectX or driver model information found", dxErr)
		return GraphicsFact{}, e
	}
	return fact, nil
}

func (p *Prober) dxdiag(ctx context.Context) (GraphicsFact, error) {
	if p.host.Runner == nil {
		return GraphicsFact{}, ccerrors.ProbeError(ccerrors.ErrCodeProbeUnavailable, "dxdiag", "no command runner configured", nil)
	}

	ws, err := NewWorkspace(p.host.TempDir, "dxdiag")
	if err != nil {
		return GraphicsFact{}, err
	}
	defer func() { _ = ws.Close() }()

	report := ws.Path("dxdiag.txt")
	if _, err := p.host.Runner.Run(ctx, "dxdiag", "/t", report); err != nil {
		return GraphicsFact{}, err
	}

	data, err := WaitForFile(ctx, report, p.host.Wait, p.logger())
	if err != nil {
		return GraphicsFact{}, err
	}

	dx, wddm := ParseDxDiag(string(data))
	return GraphicsFact{DirectXVersion: dx, WDDMVersion: wddm, Source: GraphicsSourceDxDiag}, nil
}

func (p *Prober) d3d12Path() string {
	root := p.host.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	// Always a Windows path, whatever the build platform.
	return strings.TrimRight(root, `\`) + `\System32\d3d12.dll`
}

func (p *Prober) currentBuild() (int, bool) {
	s, err := p.host.Registry.ReadString(currentVersionKey, "CurrentBuildNumber")
	if err != nil {
		return 0, false
	}
	build, err := strconv.Atoi(strings.TrimSpace(s))
	return build, err == nil
}
