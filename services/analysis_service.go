package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nicoiwnl/NutriRenal/models"
	"github.com/nicoiwnl/NutriRenal/utils"
)

// NormalizedAnalysis is the canonical result shape, keyed in Spanish for the
// mobile app. Every field has a defined default so a partial model payload
// still yields a complete record.
type NormalizedAnalysis struct {
	DetectedFoods []string `json:"alimentos_detectados"`
	Totals        struct {
		Energy     float64 `json:"energia"`
		Sodium     float64 `json:"sodio"`
		Potassium  float64 `json:"potasio"`
		Phosphorus float64 `json:"fosforo"`
		Protein    float64 `json:"proteinas"`
	} `json:"totales"`
	Recommendations string `json:"recomendaciones"`
	RenalCompatible bool   `json:"compatibilidad_renal"`
	OriginalText    string `json:"texto_original,omitempty"`
	Failed          bool   `json:"-"`
}

// payloadKeys are the fields lifted out of a nested "texto_original" object
// when they are missing at the top level. Lifting is per-field: a payload
// with top-level detected foods can still recover a nested-only
// recommendation or verdict.
var payloadKeys = []string{
	"alimentos_detectados", "totales", "recomendaciones", "compatibilidad_renal",
}

// Normalize fills a NormalizedAnalysis from a raw vision payload. Some model
// responses wrap part or all of the real payload inside "texto_original" as
// a nested object; each expected key absent at the top level is taken from
// the nested object instead. The input map is never modified.
func Normalize(payload map[string]any) NormalizedAnalysis {
	if payload == nil {
		payload = map[string]any{}
	}
	if nested, ok := payload["texto_original"].(map[string]any); ok {
		merged := make(map[string]any, len(payload))
		for k, v := range payload {
			merged[k] = v
		}
		for _, key := range payloadKeys {
			if _, ok := merged[key]; ok {
				continue
			}
			if v, ok := nested[key]; ok {
				merged[key] = v
			}
		}
		raw, _ := json.Marshal(nested)
		merged["texto_original"] = string(raw)
		payload = merged
	}

	var out NormalizedAnalysis
	if foods, ok := payload["alimentos_detectados"].([]any); ok {
		for _, f := range foods {
			if s, ok := f.(string); ok && strings.TrimSpace(s) != "" {
				out.DetectedFoods = append(out.DetectedFoods, strings.TrimSpace(s))
			}
		}
	}
	if totals, ok := payload["totales"].(map[string]any); ok {
		out.Totals.Energy = toFloat(totals["energia"])
		out.Totals.Sodium = toFloat(totals["sodio"])
		out.Totals.Potassium = toFloat(totals["potasio"])
		out.Totals.Phosphorus = toFloat(totals["fosforo"])
		out.Totals.Protein = toFloat(totals["proteinas"])
	}
	if rec, ok := payload["recomendaciones"].(string); ok {
		out.Recommendations = rec
	}
	if compat, ok := payload["compatibilidad_renal"].(bool); ok {
		out.RenalCompatible = compat
	}
	if txt, ok := payload["texto_original"].(string); ok {
		out.OriginalText = txt
	}
	return out
}

// toFloat copes with models returning numbers as strings ("350 mg").
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		fields := strings.Fields(n)
		if len(fields) == 0 {
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// SummaryName builds the record title from the detected-item list: up to
// three names joined, a "+N más" suffix beyond that.
func SummaryName(foods []string) string {
	switch {
	case len(foods) == 0:
		return "Alimento no identificado"
	case len(foods) <= 3:
		return strings.Join(foods, ", ")
	default:
		return fmt.Sprintf("%s +%d más", strings.Join(foods[:3], ", "), len(foods)-3)
	}
}

// FallbackAnalysis is persisted when the vision call fails: conservative
// verdict, zero totals, flagged so the client can offer a retry.
func FallbackAnalysis() NormalizedAnalysis {
	var out NormalizedAnalysis
	out.Recommendations = "No se pudo analizar la imagen. Intenta con otra foto o consulta a tu nutricionista."
	out.RenalCompatible = false
	out.Failed = true
	return out
}

// AnalysisService runs the food-photo pipeline: store the image, ask the
// vision model, normalize, re-evaluate compatibility against the configured
// renal restriction, persist, match detected labels to the catalog, and
// alert caregivers when the verdict is incompatible.
type AnalysisService struct {
	db              *gorm.DB
	vision          *VisionService
	matcher         *FoodMatcher
	restrictions    *RestrictionService
	logger          *zap.Logger
	restrictionName string
}

func NewAnalysisService(db *gorm.DB, vision *VisionService, logger *zap.Logger) *AnalysisService {
	name := os.Getenv("RENAL_RESTRICTION_NAME")
	if name == "" {
		name = "renal-safe"
	}
	return &AnalysisService{
		db:              db,
		vision:          vision,
		matcher:         NewFoodMatcher(db),
		restrictions:    NewRestrictionService(db),
		logger:          logger,
		restrictionName: name,
	}
}

// AnalyzeImage accepts a data-URI image ("data:image/jpeg;base64,...").
func (s *AnalysisService) AnalyzeImage(ctx context.Context, personID, imageDataURI string) (*models.ImageAnalysisResult, error) {
	imageURL, err := utils.UploadBase64Image(imageDataURI, "analysis-images/"+personID)
	if err != nil {
		return nil, fmt.Errorf("failed to store analysis image: %w", err)
	}

	var analysis NormalizedAnalysis
	raw := ""
	base64Part := imageDataURI
	if idx := strings.Index(imageDataURI, ","); idx >= 0 {
		base64Part = imageDataURI[idx+1:]
	}
	payload, err := s.vision.AnalyzeFoodImage(ctx, base64Part)
	if err != nil {
		s.logger.Warn("vision analysis failed, storing fallback",
			zap.String("person_id", personID), zap.Error(err))
		analysis = FallbackAnalysis()
	} else {
		analysis = Normalize(payload)
		if b, merr := json.Marshal(payload); merr == nil {
			raw = string(b)
		}
	}

	compatible := s.verdict(analysis)

	result := &models.ImageAnalysisResult{
		PersonID:        personID,
		ImageURL:        imageURL,
		Name:            SummaryName(analysis.DetectedFoods),
		Energy:          analysis.Totals.Energy,
		Sodium:          analysis.Totals.Sodium,
		Potassium:       analysis.Totals.Potassium,
		Phosphorus:      analysis.Totals.Phosphorus,
		Protein:         analysis.Totals.Protein,
		Recommendation:  analysis.Recommendations,
		RenalCompatible: compatible,
		Failed:          analysis.Failed,
		RawResult:       raw,
	}
	if err := s.db.Create(result).Error; err != nil {
		return nil, err
	}

	s.attachMatches(result, analysis.DetectedFoods)

	if !analysis.Failed && !compatible {
		s.notify(result)
	}
	return result, nil
}

// verdict prefers the local restriction engine over the model's own claim:
// when the configured renal restriction exists and carries bounds, its
// evaluation of the estimated totals decides compatibility. Without
// resolvable bounds the upstream claim stands.
func (s *AnalysisService) verdict(analysis NormalizedAnalysis) bool {
	if analysis.Failed {
		return false
	}
	restriction, err := s.restrictions.GetByName(s.restrictionName)
	if err != nil {
		return analysis.RenalCompatible
	}
	bounds := FlattenBounds(restriction.Bounds)
	if len(bounds) == 0 {
		return analysis.RenalCompatible
	}
	totals := map[string]float64{
		NutrientEnergy:     analysis.Totals.Energy,
		NutrientSodium:     analysis.Totals.Sodium,
		NutrientPotassium:  analysis.Totals.Potassium,
		NutrientPhosphorus: analysis.Totals.Phosphorus,
		NutrientProtein:    analysis.Totals.Protein,
	}
	return utils.EvaluateRestrictions(totals, bounds).Compliant
}

func (s *AnalysisService) attachMatches(result *models.ImageAnalysisResult, labels []string) {
	seen := make(map[string]struct{})
	var matched []models.FoodItem
	for _, label := range labels {
		foods, err := s.matcher.Search(label)
		if err != nil {
			s.logger.Warn("food match failed", zap.String("label", label), zap.Error(err))
			continue
		}
		for _, f := range foods {
			if _, ok := seen[f.ID]; ok {
				continue
			}
			seen[f.ID] = struct{}{}
			matched = append(matched, f)
		}
	}
	if len(matched) == 0 {
		return
	}
	if err := s.db.Model(result).Association("MatchedFoods").Append(matched); err != nil {
		s.logger.Warn("failed to link matched foods", zap.Error(err))
		return
	}
	result.MatchedFoods = matched
}

// notify alerts the patient and every linked caregiver about an
// incompatible meal.
func (s *AnalysisService) notify(result *models.ImageAnalysisResult) {
	msg := fmt.Sprintf("Comida no compatible con dieta renal: %s", result.Name)
	EmitAlert(result.PersonID, "analysis.incompatible", msg)

	var links []models.CaregiverLink
	if err := s.db.Where("patient_id = ?", result.PersonID).Find(&links).Error; err != nil {
		s.logger.Warn("failed to load caregiver links", zap.Error(err))
		return
	}
	for _, l := range links {
		EmitAlert(l.CaregiverID, "analysis.incompatible", msg)
	}
}

func (s *AnalysisService) ListByPerson(personID string) ([]models.ImageAnalysisResult, error) {
	var out []models.ImageAnalysisResult
	err := s.db.Preload("MatchedFoods").
		Where("person_id = ?", personID).
		Order("analyzed_at DESC").
		Find(&out).Error
	return out, err
}

func (s *AnalysisService) Get(id string) (*models.ImageAnalysisResult, error) {
	var r models.ImageAnalysisResult
	if err := s.db.Preload("MatchedFoods").First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
