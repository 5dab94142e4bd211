package ranking

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
)

// Day thresholds for the stepped recency boost.
const (
	veryRecentDays  = 7
	recentDays      = 30
	moderateDays    = 90
	oldDays         = 180
	veryRecentBoost = 0.15
	recentBoost     = 0.10
	moderateBoost   = 0.05
	oldBoost        = 0.02
)

// dateFields is the metadata key priority order when looking up a
// document date.
var dateFields = [...]string{"date_mod", "updated_at", "date_creation", "created_at"}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = [...]string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RecencyBooster adds a freshness boost to document scores. Stateless
// apart from the injectable clock.
type RecencyBooster struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewRecencyBooster creates a booster using the wall clock.
func NewRecencyBooster(logger *zap.Logger) *RecencyBooster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecencyBooster{now: time.Now, logger: logger}
}

// WithClock overrides the clock, for tests.
func (r *RecencyBooster) WithClock(now func() time.Time) *RecencyBooster {
	r.now = now
	return r
}

// Boost maps a document date to its additive boost. The zero time is an
// error: callers must check for a date before asking for a boost.
func (r *RecencyBooster) Boost(documentDate time.Time) (float64, error) {
	if documentDate.IsZero() {
		return 0, domain.ErrMissingDate
	}

	age := r.now().UTC().Sub(documentDate.UTC())
	days := int(age.Hours() / 24)

	switch {
	case days < veryRecentDays:
		return veryRecentBoost, nil
	case days < recentDays:
		return recentBoost, nil
	case days < moderateDays:
		return moderateBoost, nil
	case days < oldDays:
		return oldBoost, nil
	default:
		return 0, nil
	}
}

// ApplyToDocuments boosts each document carrying a parseable date and
// re-sorts the batch by score descending. Documents without a date or
// with an unparseable one are skipped; a bad record never fails the
// batch.
func (r *RecencyBooster) ApplyToDocuments(documents []domain.Document) []domain.Document {
	if len(documents) == 0 {
		return documents
	}

	boosted := 0
	for i := range documents {
		doc := &documents[i]

		dateStr := ""
		for _, field := range dateFields {
			if v := doc.MetadataValue(field); v != "" {
				dateStr = v
				break
			}
		}
		if dateStr == "" {
			continue
		}

		docDate, ok := parseDocumentDate(dateStr)
		if !ok {
			r.logger.Debug("unparseable document date, skipping recency boost",
				zap.String("document_id", doc.ID),
				zap.String("date", dateStr),
			)
			continue
		}

		boost, err := r.Boost(docDate)
		if err != nil || boost == 0 {
			continue
		}

		doc.Score += boost
		doc.RecencyBoost = boost
		boosted++
	}

	sort.SliceStable(documents, func(i, j int) bool {
		return documents[i].Score > documents[j].Score
	})

	if boosted > 0 {
		r.logger.Debug("recency boost applied",
			zap.Int("documents", len(documents)),
			zap.Int("boosted", boosted),
		)
	}

	return documents
}

// parseDocumentDate parses ISO-8601 dates, accepting a Z suffix as UTC
// and a few legacy layouts from the source index.
func parseDocumentDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
