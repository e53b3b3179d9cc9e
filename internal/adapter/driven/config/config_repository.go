package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/xm-reports-go/internal/domain/repository"
	"github.com/diillson/xm-reports-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

type decoder struct {
	format    string
	unmarshal func([]byte, interface{}) error
}

// Formatos aceitos, pela extensão do arquivo.
var decoders = map[string]decoder{
	".toml": {format: "TOML", unmarshal: toml.Unmarshal},
	".yaml": {format: "YAML", unmarshal: yaml.Unmarshal},
	".yml":  {format: "YAML", unmarshal: yaml.Unmarshal},
	".json": {format: "JSON", unmarshal: json.Unmarshal},
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Só os campos presentes no arquivo ficam preenchidos; o resto fica zerado para o Apply.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(filePath))]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported config file format: %s", types.ErrInvalidConfig, filepath.Ext(filePath))
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: config file %s", types.ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, not a file", types.ErrInvalidConfig, filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config
	if err := dec.unmarshal(fileData, &config); err != nil {
		return nil, fmt.Errorf("%w: error parsing %s file %s: %v", types.ErrInvalidConfig, dec.format, filePath, err)
	}

	return &config, nil
}
