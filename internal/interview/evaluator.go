// Package interview evaluates interview readiness from the interviewer's
// side of the table: which resume claims invite probing, what questions
// they are likely to attract, and where the resume undercuts itself.
package interview

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Question types emitted by the predictor.
const (
	QuestionDeepDive    = "resume_deep_dive"
	QuestionBehavioral  = "behavioral"
	QuestionSituational = "situational"
)

// Consistency risk types.
const (
	RiskSkillDepthMismatch    = "skill_depth_mismatch"
	RiskVagueClaim            = "vague_claim"
	RiskOverstatedAchievement = "overstated_achievement"
)

const (
	maxPredictedQuestions = 10
	maxSkillClaims        = 5
	minBulletLength       = 10
	minSpecificWords      = 5
)

var (
	// Quantified metrics: percentages, dollar amounts, magnitude words,
	// time spans.
	metricsPattern = regexp.MustCompile(`(?i)\d+%|\d+\.\d+%|\$\d+[KMB]?|\d+\s*(?:million|thousand|k|m|b)\b|\d+\s*(?:years?|months?|days?)\b`)

	// Verbs indicating concrete work; matched against lowercased text.
	actionPattern = regexp.MustCompile(`\b(?:built|developed|created|implemented|designed|optimized|reduced|increased|improved|managed|led|achieved|delivered)\b`)

	// Bullet delimiters inside a description blob.
	bulletPattern = regexp.MustCompile(`[•\-*]\s*|\n\s*[-•*]\s*`)

	// Evidence extraction: percentages, then numbers with optional units.
	percentPattern = regexp.MustCompile(`\d+\.?\d*%`)
	numberPattern  = regexp.MustCompile(`(?i)\d+[KMB]?|\d+\s*(?:million|thousand|k|m|b|years?|months?|days?)\b`)
)

// Generic phrasing that weakens a claim.
var vagueMarkers = []string{
	"helped",
	"assisted",
	"worked on",
	"involved in",
	"contributed to",
	"part of",
	"responsible for",
}

// Broad-impact words that demand numbers to back them up.
var broadImpactWords = []string{
	"significant",
	"major",
	"huge",
	"massive",
	"dramatic",
	"revolutionary",
}

// Evaluate extracts claims from the resume, scores how defensible each one
// is under questioning, predicts the interview questions risky claims
// attract, and flags consistency risks between the skills list and the
// work history.
func Evaluate(resume *types.ParsedResume, features *types.FeatureVector) types.InterviewReadinessResult {
	result := types.InterviewReadinessResult{}

	result.ResumeClaims = extractClaims(resume)
	result.PredictedQuestions = predictQuestions(result.ResumeClaims)
	result.ConsistencyRisks = identifyConsistencyRisks(resume, result.ResumeClaims)
	result.ReadinessScore = readinessScore(result.ResumeClaims, result.ConsistencyRisks)

	return result
}

// extractClaims pulls individual assertions out of the work history. Per
// job the explicit achievements list wins; otherwise the description is
// split into bullets. A resume with no extractable claims falls back to
// its top skills as weak "proficient in" claims.
func extractClaims(resume *types.ParsedResume) []types.ResumeClaim {
	var claims []types.ResumeClaim

	for _, job := range resume.WorkExperience {
		if len(job.Achievements) > 0 {
			for _, achievement := range job.Achievements {
				if text := strings.TrimSpace(achievement); text != "" {
					claims = append(claims, claimFromText(text, types.ClaimTypeAchievement))
				}
			}
			continue
		}

		for _, bullet := range bulletPattern.Split(job.Description, -1) {
			bullet = strings.TrimSpace(bullet)
			if len(bullet) > minBulletLength {
				claims = append(claims, claimFromText(bullet, types.ClaimTypeAchievement))
			}
		}
	}

	if len(claims) == 0 {
		top := resume.Skills
		if len(top) > maxSkillClaims {
			top = top[:maxSkillClaims]
		}
		for _, skill := range top {
			if strings.TrimSpace(skill) == "" {
				continue
			}
			claims = append(claims, types.ResumeClaim{
				Text:               "Proficient in " + skill,
				Type:               types.ClaimTypeSkill,
				DefensibilityScore: 0.5,
				DepthIndicator:     types.DepthSurface,
				ConsistencyRisk:    types.ClaimRiskMedium,
			})
		}
	}

	return claims
}

func claimFromText(text, claimType string) types.ResumeClaim {
	score, depth := defensibility(text)
	return types.ResumeClaim{
		Text:               text,
		Type:               claimType,
		DefensibilityScore: score,
		DepthIndicator:     depth,
		ConsistencyRisk:    claimRisk(score),
		SupportingEvidence: extractEvidence(text),
	}
}

// defensibility scores how well a claim would hold up under questioning.
// Quantified metrics beat specific action verbs beat everything else;
// vague phrasing or very short claims sink to the floor.
func defensibility(text string) (float64, string) {
	lower := strings.ToLower(text)

	hasMetrics := metricsPattern.MatchString(text)
	hasAction := actionPattern.MatchString(lower)
	isVague := false
	for _, marker := range vagueMarkers {
		if strings.Contains(lower, marker) {
			isVague = true
			break
		}
	}

	switch {
	case hasMetrics:
		return 0.9, types.DepthDeep
	case hasAction && !isVague:
		return 0.7, types.DepthModerate
	case isVague || len(strings.Fields(text)) < minSpecificWords:
		return 0.3, types.DepthSurface
	default:
		return 0.5, types.DepthModerate
	}
}

func claimRisk(score float64) string {
	switch {
	case score < 0.4:
		return types.ClaimRiskHigh
	case score < 0.6:
		return types.ClaimRiskMedium
	default:
		return types.ClaimRiskNone
	}
}

// extractEvidence collects the quantifiable fragments of a claim. Whole
// matches are kept, not capture groups.
func extractEvidence(text string) []string {
	var evidence []string
	evidence = append(evidence, percentPattern.FindAllString(text, -1)...)
	evidence = append(evidence, numberPattern.FindAllString(text, -1)...)
	return evidence
}

// predictQuestions generates the questions risky claims attract: a deep
// dive for every risky claim, a challenge question for weak ones, and a
// measurement question for unquantified ones. The list is capped to keep
// the output focused.
func predictQuestions(claims []types.ResumeClaim) []types.PredictedQuestion {
	var questions []types.PredictedQuestion

	for _, claim := range claims {
		if claim.ConsistencyRisk != types.ClaimRiskHigh && claim.ConsistencyRisk != types.ClaimRiskMedium {
			continue
		}

		likelihood := 0.6
		if claim.ConsistencyRisk == types.ClaimRiskHigh {
			likelihood = 0.8
		}
		questions = append(questions, types.PredictedQuestion{
			Question:     fmt.Sprintf("Can you explain how you achieved: '%s...'?", truncate(claim.Text, 50)),
			Likelihood:   likelihood,
			Type:         QuestionDeepDive,
			RelatedClaim: truncate(claim.Text, 100),
			Reasoning:    fmt.Sprintf("Claim has %s consistency risk and may need clarification.", claim.ConsistencyRisk),
		})

		if claim.DefensibilityScore < 0.5 {
			questions = append(questions, types.PredictedQuestion{
				Question:     "What challenges did you face while working on this?",
				Likelihood:   0.7,
				Type:         QuestionBehavioral,
				RelatedClaim: truncate(claim.Text, 100),
				Reasoning:    "Vague or low-defensibility claims often prompt challenge questions.",
			})
		}

		if len(claim.SupportingEvidence) == 0 {
			questions = append(questions, types.PredictedQuestion{
				Question:     "How did you measure the success of this achievement?",
				Likelihood:   0.7,
				Type:         QuestionSituational,
				RelatedClaim: truncate(claim.Text, 100),
				Reasoning:    "Claims without metrics often prompt measurement questions.",
			})
		}
	}

	if len(questions) > maxPredictedQuestions {
		questions = questions[:maxPredictedQuestions]
	}
	return questions
}

// identifyConsistencyRisks cross-checks the resume against itself: skills
// nothing in the work history backs up, claims with no evidence, and broad
// impact statements with no numbers behind them.
func identifyConsistencyRisks(resume *types.ParsedResume, claims []types.ResumeClaim) []types.ConsistencyRisk {
	var risks []types.ConsistencyRisk

	if unused := unusedSkills(resume); len(unused) > 0 {
		shown := unused
		if len(shown) > 3 {
			shown = shown[:3]
		}
		risks = append(risks, types.ConsistencyRisk{
			RiskType:             RiskSkillDepthMismatch,
			Severity:             types.SeverityMedium,
			Description:          fmt.Sprintf("Skills listed but not mentioned in work experience: %s", strings.Join(shown, ", ")),
			MitigationSuggestion: "Be prepared to explain how you used these skills in your work.",
		})
	}

	for _, claim := range claims {
		if len(claim.SupportingEvidence) == 0 && claim.DefensibilityScore < 0.5 {
			severity := types.SeverityMedium
			if claim.DefensibilityScore < 0.4 {
				severity = types.SeverityHigh
			}
			risks = append(risks, types.ConsistencyRisk{
				RiskType:             RiskVagueClaim,
				Severity:             severity,
				Description:          fmt.Sprintf("Claim lacks specific evidence: '%s...'", truncate(claim.Text, 60)),
				RelatedClaim:         truncate(claim.Text, 100),
				MitigationSuggestion: "Prepare specific examples and metrics to support this claim.",
			})
		}
	}

	for _, claim := range claims {
		if len(claim.SupportingEvidence) > 0 {
			continue
		}
		lower := strings.ToLower(claim.Text)
		for _, word := range broadImpactWords {
			if strings.Contains(lower, word) {
				risks = append(risks, types.ConsistencyRisk{
					RiskType:             RiskOverstatedAchievement,
					Severity:             types.SeverityMedium,
					Description:          fmt.Sprintf("Broad impact statement without metrics: '%s...'", truncate(claim.Text, 60)),
					RelatedClaim:         truncate(claim.Text, 100),
					MitigationSuggestion: "Be ready to quantify the impact with specific numbers.",
				})
				break
			}
		}
	}

	return risks
}

// unusedSkills returns, in resume order, the skills that never show up in
// any job's description or achievements. Matching is a case-insensitive
// substring check; returned names are lowercased.
func unusedSkills(resume *types.ParsedResume) []string {
	if len(resume.Skills) == 0 {
		return nil
	}

	jobTexts := make([]string, 0, len(resume.WorkExperience))
	for _, job := range resume.WorkExperience {
		jobTexts = append(jobTexts, strings.ToLower(job.CombinedText()))
	}

	var unused []string
	seen := make(map[string]bool, len(resume.Skills))
	for _, skill := range resume.Skills {
		lower := strings.ToLower(skill)
		if seen[lower] {
			continue
		}
		seen[lower] = true

		mentioned := false
		for _, text := range jobTexts {
			if strings.Contains(text, lower) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			unused = append(unused, lower)
		}
	}
	return unused
}

// readinessScore folds claim risks and consistency risks into the final
// 0-100 readiness score.
func readinessScore(claims []types.ResumeClaim, risks []types.ConsistencyRisk) float64 {
	score := 100.0

	for _, claim := range claims {
		switch claim.ConsistencyRisk {
		case types.ClaimRiskHigh:
			score -= 8.0
		case types.ClaimRiskMedium:
			score -= 4.0
		}

		if claim.DefensibilityScore < 0.4 {
			score -= 5.0
		} else if claim.DefensibilityScore < 0.6 {
			score -= 2.0
		}
	}

	for _, risk := range risks {
		switch risk.Severity {
		case types.SeverityHigh:
			score -= 10.0
		case types.SeverityMedium:
			score -= 5.0
		case types.SeverityLow:
			score -= 2.0
		}
	}

	return math.Max(0.0, math.Min(100.0, math.Round(score*100)/100))
}

// truncate returns at most limit runes of text.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
