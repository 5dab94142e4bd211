// Package classify assigns a corporate department domain to a query
// from keyword evidence. The domain label feeds both retrieval
// filtering and the confidence model.
package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/atendia/respondex/internal/textnorm"
)

// GeneralDomain is the label returned when no department keywords
// match.
const GeneralDomain = "Geral"

// DomainScore pairs a detected domain with its confidence.
type DomainScore struct {
	Name       string
	Confidence float64
}

type domainEntry struct {
	name     string
	patterns []*regexp.Regexp
}

// Classifier matches queries against per-domain keyword tables.
// Read-only after construction, safe for concurrent use.
type Classifier struct {
	domains []domainEntry
}

// NewClassifier builds a classifier. keywords maps domain name to its
// keyword list; nil selects the built-in department tables. Keywords
// are matched accent-insensitively on word boundaries.
func NewClassifier(keywords map[string][]string) *Classifier {
	order := defaultDomainOrder
	if keywords == nil {
		keywords = defaultKeywords
	} else {
		order = make([]string, 0, len(keywords))
		for name := range keywords {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	c := &Classifier{}
	for _, name := range order {
		if name == GeneralDomain {
			continue
		}
		entry := domainEntry{name: name}
		for _, kw := range keywords[name] {
			folded := textnorm.Normalize(kw)
			if folded == "" {
				continue
			}
			entry.patterns = append(entry.patterns,
				regexp.MustCompile(`\b`+regexp.QuoteMeta(folded)+`\b`))
		}
		c.domains = append(c.domains, entry)
	}
	return c
}

// Classify returns the domains whose keyword score clears the
// relative threshold, or ["Geral"] when nothing matches.
func (c *Classifier) Classify(query string) []string {
	scores := c.scores(query)
	if len(scores) == 0 {
		return []string{GeneralDomain}
	}

	maxScore := 0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	threshold := float64(maxScore) * 0.3
	if threshold < 1 {
		threshold = 1
	}

	var detected []string
	for _, d := range c.domains {
		if s, ok := scores[d.name]; ok && float64(s) >= threshold {
			detected = append(detected, d.name)
		}
	}
	if len(detected) == 0 {
		return []string{GeneralDomain}
	}
	return detected
}

// Confidence scores how strongly the query supports the given domain,
// scaled by query length so short queries cannot look certain.
func (c *Classifier) Confidence(query, domain string) float64 {
	scores := c.scores(query)
	score, ok := scores[domain]
	if !ok {
		return 0
	}
	words := len(strings.Fields(query))
	divisor := float64(words) * 0.4
	if divisor < 1 {
		divisor = 1
	}
	conf := float64(score) / divisor
	if conf > 1 {
		conf = 1
	}
	return conf
}

// ClassifyWithConfidence returns the detected domains with their
// confidences, highest first.
func (c *Classifier) ClassifyWithConfidence(query string) []DomainScore {
	domains := c.Classify(query)
	out := make([]DomainScore, len(domains))
	for i, d := range domains {
		out[i] = DomainScore{Name: d, Confidence: c.Confidence(query, d)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func (c *Classifier) scores(query string) map[string]int {
	folded := textnorm.Normalize(query)
	scores := map[string]int{}
	for _, d := range c.domains {
		n := 0
		for _, p := range d.patterns {
			if p.MatchString(folded) {
				n++
			}
		}
		if n > 0 {
			scores[d.name] = n
		}
	}
	return scores
}

var defaultDomainOrder = []string{"TI", "RH", "Financeiro"}

var defaultKeywords = map[string][]string{
	"TI": {
		"senha", "password", "internet", "rede", "wifi", "conexao",
		"computador", "pc", "notebook", "desktop", "servidor",
		"sistema", "software", "aplicativo", "app", "programa",
		"instalar", "desinstalar", "atualizar", "update",
		"login", "acesso", "usuario", "permissao", "bloqueado",
		"email", "e-mail", "outlook", "correio",
		"erro", "bug", "travando", "lento", "nao funciona",
		"virus", "antivirus", "firewall", "vpn", "seguranca",
		"impressora", "scanner", "mouse", "teclado", "monitor",
		"backup", "restore", "recovery", "suporte tecnico",
	},
	"RH": {
		"salario", "pagamento", "contracheque", "holerite",
		"remuneracao", "adiantamento", "decimo terceiro",
		"beneficio", "vale", "auxilio", "plano de saude",
		"vale transporte", "vale refeicao", "vale alimentacao",
		"ferias", "folga", "feriado", "recesso", "descanso",
		"ponto", "hora extra", "atraso", "falta", "atestado",
		"licenca", "afastamento",
		"promocao", "cargo", "funcao", "treinamento", "curso",
		"desenvolvimento", "avaliacao", "performance",
		"admissao", "contratacao", "demissao", "desligamento",
		"rescisao", "contrato", "documentacao",
		"colaborador", "funcionario", "gestor", "equipe",
	},
	"Financeiro": {
		"nota fiscal", "nf", "invoice", "recibo", "comprovante",
		"pagamento", "pagar", "boleto", "fatura", "cobranca",
		"debito", "credito", "transferencia", "pix",
		"reembolso", "ressarcimento", "devolucao", "estorno",
		"compra", "aquisicao", "fornecedor", "cotacao",
		"pedido", "ordem de compra",
		"orcamento", "budget", "custo", "despesa", "receita",
		"lucro", "prejuizo", "investimento",
		"contabil", "fiscal", "imposto", "tributo",
		"financeiro", "tesouraria", "caixa", "fluxo de caixa",
	},
}
