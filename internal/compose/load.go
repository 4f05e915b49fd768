package compose

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
)

// LoadOptions contains optional configuration for Load.
type LoadOptions struct {
	// Validate runs compose-go schema validation after loading.
	Validate bool
}

// Load loads the compose project defined by the file at path.
//
// Relative paths and the project name are resolved against the directory
// holding the file, the same way the compose CLI does. Variables are
// interpolated from a .env file in that directory overlaid by the process
// environment. opts can be nil for default behavior.
func Load(ctx context.Context, path string, opts *LoadOptions) (*types.Project, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if opts == nil {
		opts = &LoadOptions{}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &fileNotFoundError{path: path, cause: err}
		}
		return nil, &pathError{path: path, cause: err}
	}
	if info.IsDir() {
		return nil, &pathError{path: path, cause: os.ErrInvalid}
	}

	workdir := filepath.Dir(path)

	envMap := make(map[string]string)
	defaultEnvFile := filepath.Join(workdir, ".env")
	if _, err := os.Stat(defaultEnvFile); err == nil {
		_ = loadEnvFile(defaultEnvFile, envMap)
	}
	maps.Copy(envMap, environMap(os.Environ()))

	configDetails, err := loader.LoadConfigFiles(ctx, []string{path}, workdir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &fileNotFoundError{path: path, cause: err}
		}
		if isYAMLError(err) {
			return nil, &invalidYAMLError{cause: err}
		}
		return nil, &pathError{path: path, cause: err}
	}

	if configDetails.Environment == nil {
		configDetails.Environment = make(types.Mapping)
	}
	for key, val := range envMap {
		if _, exists := configDetails.Environment[key]; !exists {
			configDetails.Environment[key] = val
		}
	}

	projectName := loader.NormalizeProjectName(filepath.Base(workdir))
	if projectName == "" {
		projectName = "default"
	}

	// Validation is deferred so the project name is set first.
	project, err := loader.LoadWithContext(ctx, *configDetails, func(o *loader.Options) {
		o.SkipValidation = true
		o.SetProjectName(projectName, false)
	})
	if err != nil {
		if isYAMLError(err) {
			return nil, &invalidYAMLError{cause: err}
		}
		return nil, &loaderError{cause: err}
	}

	if opts.Validate {
		if err := validateProject(ctx, project); err != nil {
			return nil, err
		}
	}

	return project, nil
}

func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, val, ok := strings.Cut(kv, "="); ok && key != "" {
			env[key] = val
		}
	}
	return env
}

// loadEnvFile loads key=value pairs from a .env file into envMap.
// Blank lines and comments are ignored.
func loadEnvFile(filePath string, envMap map[string]string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, val, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		envMap[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(val), `"'`)
	}

	return nil
}
