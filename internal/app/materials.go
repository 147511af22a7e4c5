package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/holmes-app/materialgirl/internal/domain"
)

// materialsFile — формат файла материалов:
//
//	materials:
//	  - key: rates
//	    url: https://example.com/rates.json
//	    expiration: 30s
//	    grace_period: 5m
//	    lock_timeout: 1m
type materialsFile struct {
	Materials []domain.Source `yaml:"materials"`
}

// LoadMaterials читает и проверяет файл материалов.
func LoadMaterials(path string) ([]domain.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("materials file: %w", err)
	}
	return ParseMaterials(data)
}

// ParseMaterials разбирает YAML: у каждого источника есть key и url, ключи не повторяются.
func ParseMaterials(data []byte) ([]domain.Source, error) {
	var f materialsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("materials file: %w", err)
	}
	seen := make(map[string]bool, len(f.Materials))
	for i, src := range f.Materials {
		if src.Key == "" {
			return nil, fmt.Errorf("materials file: entry %d: empty key", i)
		}
		if src.URL == "" {
			return nil, fmt.Errorf("materials file: %q: empty url", src.Key)
		}
		if seen[src.Key] {
			return nil, fmt.Errorf("materials file: duplicate key %q", src.Key)
		}
		seen[src.Key] = true
	}
	return f.Materials, nil
}
