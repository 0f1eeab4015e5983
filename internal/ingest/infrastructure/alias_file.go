package infrastructure

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"innsight/internal/ingest/domain"
)

// LoadAliases retourne les synonymes par défaut étendus par le fichier YAML donné.
// Format: un concept canonique par clé, liste de synonymes en valeur.
//
//	Daily Rate:
//	  - Valor Diária
//	Room:
//	  - Apto
func LoadAliases(path string) (*domain.AliasSet, error) {
	aliases := domain.DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases file: %w", err)
	}
	if err := ExtendAliases(aliases, data); err != nil {
		return nil, fmt.Errorf("aliases file %s: %w", path, err)
	}
	return aliases, nil
}

// ExtendAliases ajoute à aliases les synonymes décrits dans un document YAML
func ExtendAliases(aliases *domain.AliasSet, data []byte) error {
	var extra map[string][]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	for name, synonyms := range extra {
		concept, err := domain.ParseConcept(name)
		if err != nil {
			return err
		}
		aliases.Extend(concept, synonyms...)
	}
	return nil
}
