package domain

// ColumnBinding associe chaque concept à l'index de sa colonne dans le tableau
type ColumnBinding map[Concept]int

// Index retourne l'index de colonne lié au concept
func (b ColumnBinding) Index(c Concept) int {
	idx, ok := b[c]
	if !ok {
		return -1
	}
	return idx
}

// NormalizedTable tableau renommé: colonnes liées sous leur nom canonique,
// colonnes supplémentaires conservées telles quelles (ignorées en aval)
type NormalizedTable struct {
	*RawTable
	Binding ColumnBinding
}

// Normalizer résout les en-têtes d'un tableur vers le schéma canonique
type Normalizer struct {
	aliases *AliasSet
}

// NewNormalizer crée un normaliseur; aliases nil = synonymes par défaut
func NewNormalizer(aliases *AliasSet) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Normalizer{aliases: aliases}
}

// Resolve lie chaque concept au premier synonyme présent dans les en-têtes.
// Échoue avec MissingColumns en nommant tous les concepts non trouvés.
func (n *Normalizer) Resolve(headers []string) (ColumnBinding, error) {
	normalized := make([]string, len(headers))
	position := make(map[string]int, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
		if _, dup := position[normalized[i]]; !dup {
			position[normalized[i]] = i
		}
	}

	binding := make(ColumnBinding, len(Concepts()))
	var missing []string
	for _, concept := range Concepts() {
		found := false
		for _, synonym := range n.aliases.synonyms[concept] {
			if idx, ok := position[NormalizeHeader(synonym)]; ok {
				binding[concept] = idx
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, string(concept))
		}
	}

	if len(missing) > 0 {
		return nil, NewMissingColumns(missing, normalized)
	}
	return binding, nil
}

// Normalize vérifie le tableau, résout les colonnes et renomme les en-têtes liés.
// Aucun tableau partiel n'est produit en cas d'échec.
func (n *Normalizer) Normalize(raw *RawTable) (*NormalizedTable, error) {
	if raw == nil || raw.Len() == 0 {
		name := ""
		if raw != nil {
			name = raw.Name
		}
		return nil, NewEmptyFile(name)
	}

	binding, err := n.Resolve(raw.Headers)
	if err != nil {
		return nil, err
	}

	headers := make([]string, len(raw.Headers))
	for i, h := range raw.Headers {
		headers[i] = NormalizeHeader(h)
	}
	for concept, idx := range binding {
		headers[idx] = string(concept)
	}

	return &NormalizedTable{
		RawTable: &RawTable{
			Name:    raw.Name,
			Headers: headers,
			Rows:    raw.Rows,
		},
		Binding: binding,
	}, nil
}
