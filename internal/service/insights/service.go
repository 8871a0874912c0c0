package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/pkg/clients/anthropic"
)

// Messages returned instead of errors; they are shown to the user as is.
const (
	MsgNoData      = "Aucune donnée disponible pour l'analyse."
	MsgMissingKey  = "Clé API manquante. Veuillez configurer ANTHROPIC_API_KEY dans l'environnement."
	MsgUnavailable = "Le service d'analyse IA est momentanément indisponible. Vérifiez votre clé API ou votre connexion."
	MsgEmpty       = "Analyse indisponible pour le moment."
)

const persona = "Tu es un ingénieur agronome expert en gestion de production pour une station de conditionnement. " +
	"Tes réponses doivent être en français, stratégiques, concises (max 3 points clés), " +
	"et orientées vers l'optimisation des coûts et du rendement par employé."

const instruction = "Analyse la corrélation entre le nombre d'employés et la production, et identifie les anomalies de pertes."

// Service turns recent production records into a short LLM analysis.
type Service struct {
	client anthropic.Client
	limit  int
	logger *zap.Logger
}

// NewService wires the generator. client may be nil when no key is configured.
func NewService(client anthropic.Client, limit int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = 15
	}
	return &Service{client: client, limit: limit, logger: logger}
}

// Analyze never fails: every problem is reported as a readable message.
// records are expected newest first, as kept by the store.
func (s *Service) Analyze(ctx context.Context, records []models.ProductionRecord) string {
	if len(records) == 0 {
		return MsgNoData
	}
	if s.client == nil {
		return MsgMissingKey
	}

	prompt := fmt.Sprintf("Voici les dernières données de production :\n%s\n\n%s", Summarize(records, s.limit), instruction)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	text, err := s.client.Complete(ctxWithTimeout, anthropic.CompletionRequest{
		System:      persona,
		Prompt:      prompt,
		Temperature: 0.7,
	})
	if errors.Is(err, anthropic.ErrEmptyResponse) {
		return MsgEmpty
	}
	if err != nil {
		s.logger.Error("insights generation failed", zap.Error(err))
		return MsgUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return MsgEmpty
	}
	return text
}

// Summarize formats the limit most recent records, one line each, oldest first.
func Summarize(records []models.ProductionRecord, limit int) string {
	recent := records
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}

	lines := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		r := recent[i]
		lines = append(lines, fmt.Sprintf("- Date: %s, Lot: %s, Produit: %s, Prod: %skg, Emp: %d, Pertes: %skg",
			r.Date, r.LotNumber, r.ProductName, formatKg(r.TotalWeightKg), r.EmployeeCount, formatKg(r.WasteKg)))
	}
	return strings.Join(lines, "\n")
}

func formatKg(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
