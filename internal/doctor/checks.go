package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/engine"
	"github.com/conn-castle/cylc-layer/internal/envfile"
	"github.com/conn-castle/cylc-layer/internal/install"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

var (
	loadConfigFunc = config.Load
	lookPathFunc   = exec.LookPath
	statFunc       = os.Stat
)

// CheckConfig loads the configuration at path. On failure the config is nil
// and the result explains how to fix it, listing unknown keys when present.
func CheckConfig(path string, required bool) ([]Result, *config.Config) {
	cfg, err := loadConfigFunc(path, required)
	if err == nil {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   fmt.Sprintf(messages.DoctorConfigLoadedFmt, displayPath(path)),
		}}, cfg
	}

	result := Result{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameConfig,
		Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
		Recommendation: messages.DoctorConfigLoadRecommend,
	}
	if errors.Is(err, config.ErrConfigValidation) && path != "" {
		if details, detailErr := configUnknownKeys(path); detailErr == nil && len(details) > 0 {
			result.Message = summarizeUnknownKeys(details)
			result.Recommendation = formatUnknownKeyRecommendation(path, details)
		}
	}
	return []Result{result}, nil
}

// CheckDirectories verifies the run and source roots. A missing root is a
// warning because the engine and the installer create them on demand.
func CheckDirectories(cfg *config.Config) []Result {
	roots := []struct {
		field string
		path  string
	}{
		{field: "paths.run_base", path: cfg.Paths.RunBase},
		{field: "paths.src_base", path: cfg.Paths.SrcBase},
	}
	results := make([]Result, 0, len(roots))
	for _, root := range roots {
		info, err := statFunc(root.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameDirectories,
				Message:        fmt.Sprintf(messages.DoctorDirMissingFmt, root.field, root.path),
				Recommendation: messages.DoctorDirMissingRecommend,
			})
		case err != nil:
			results = append(results, Result{
				Status:    StatusFail,
				CheckName: messages.DoctorCheckNameDirectories,
				Message:   fmt.Sprintf(messages.DoctorDirStatFailedFmt, root.path, err),
			})
		case !info.IsDir():
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameDirectories,
				Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, root.path),
				Recommendation: fmt.Sprintf(messages.DoctorPathNotDirRecommendFmt, root.field),
			})
		default:
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameDirectories,
				Message:   fmt.Sprintf(messages.DoctorDirExistsFmt, root.field, root.path),
			})
		}
	}
	return results
}

// CheckEngine resolves the configured engine command on PATH.
func CheckEngine(cfg *config.Config) Result {
	argv, err := engine.CommandFromConfig(cfg.Engine)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameEngine,
			Message:        err.Error(),
			Recommendation: messages.DoctorEngineCommandRecommend,
		}
	}
	path, err := lookPathFunc(argv[0])
	if err != nil {
		recommendation := messages.DoctorEngineMissingRecommend
		if strings.TrimSpace(cfg.Engine.CondaEnv) != "" {
			recommendation = messages.DoctorCondaMissingRecommend
		}
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameEngine,
			Message:        fmt.Sprintf(messages.DoctorEngineMissingFmt, argv[0]),
			Recommendation: recommendation,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameEngine,
		Message:   fmt.Sprintf(messages.DoctorEngineFoundFmt, strings.Join(argv, " "), path),
	}
}

// CheckEnvFile parses engine.env_file when one is configured.
func CheckEnvFile(cfg *config.Config) []Result {
	if strings.TrimSpace(cfg.Engine.EnvFile) == "" {
		return nil
	}
	entries, err := envfile.Read(cfg.Engine.EnvFile)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameEnvFile,
			Message:        err.Error(),
			Recommendation: messages.DoctorEnvFileRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameEnvFile,
		Message:   fmt.Sprintf(messages.DoctorEnvFileLoadedFmt, cfg.Engine.EnvFile, len(entries)),
	}}
}

// CheckWorkflow reports the source link and run state of one workflow.
func CheckWorkflow(m *install.Manager) []Result {
	var results []Result
	if _, err := statFunc(m.Flow()); err != nil {
		return []Result{{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameWorkflow,
			Message:   fmt.Sprintf(messages.DoctorFlowMissingFmt, m.Flow()),
		}}
	}

	results = append(results, checkSourceLink(m))

	if _, err := statFunc(m.RunPath()); err != nil {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameWorkflow,
			Message:   fmt.Sprintf(messages.DoctorRunAbsentFmt, m.ID()),
		})
		return results
	}
	if _, err := statFunc(m.ContactPath()); err == nil {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameWorkflow,
			Message:        fmt.Sprintf(messages.DoctorRunClaimedFmt, m.ID()),
			Recommendation: messages.DoctorRunClaimedRecommend,
		})
		return results
	}
	results = append(results, Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameWorkflow,
		Message:   fmt.Sprintf(messages.DoctorRunStoppedFmt, m.ID()),
	})
	return results
}

func checkSourceLink(m *install.Manager) Result {
	link := m.SrcWorkflowPath()
	if _, err := os.Lstat(link); errors.Is(err, fs.ErrNotExist) {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameWorkflow,
			Message:   fmt.Sprintf(messages.DoctorSourceUnlinkedFmt, link),
		}
	}
	linked, err := statFunc(link)
	flow, flowErr := statFunc(m.Flow())
	if err == nil && flowErr == nil && os.SameFile(linked, flow) {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameWorkflow,
			Message:   fmt.Sprintf(messages.DoctorSourceLinkedFmt, link),
		}
	}
	return Result{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameWorkflow,
		Message:        fmt.Sprintf(messages.DoctorSourceConflictFmt, link, m.Flow()),
		Recommendation: messages.DoctorSourceConflictRecommend,
	}
}

func displayPath(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}
