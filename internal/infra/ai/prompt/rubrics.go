package prompt

import (
	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Rubric instruction templates. Each one is used as the system message of a
// scoring call; the (truncated) pitch text goes in the user message. The
// model must reply with a single JSON object {"score": int, "reasoning":
// string}; the JSON response format is enforced client-side as well.

const clarityInstruction = `You are an expert pitch evaluator.
Assess the clarity and structure of the following startup pitch.
Score it on a scale of 1 to 10 (10 being perfectly clear and well-structured).
Provide a brief reasoning for the score.
Respond with one valid JSON object only (no markdown, no commentary) with keys 'score' (integer) and 'reasoning' (string).`

const teamStrengthInstruction = `You are an expert pitch evaluator focused on team assessment.
Analyze the following pitch for explicit and implicit indicators of team strength (experience, relevant background, cohesion, previous successes).
Score it on a scale of 1 to 10 (10 being an exceptionally strong team).
Provide a brief reasoning for the score.
Respond with one valid JSON object only (no markdown, no commentary) with keys 'score' (integer) and 'reasoning' (string).`

const marketFitInstruction = `You are an expert pitch evaluator focused on market fit.
Evaluate the following pitch for its understanding of the market, problem-solution fit, and competitive landscape.
Score it on a scale of 1 to 10 (10 being an outstanding market fit).
Provide a brief reasoning for the score.
Respond with one valid JSON object only (no markdown, no commentary) with keys 'score' (integer) and 'reasoning' (string).`

// Instructions returns the instruction set for the LLM-scored rubrics.
// Originality is not listed here: it is computed from embeddings, not from
// a scoring prompt.
func Instructions() map[domain.Rubric]string {
	return map[domain.Rubric]string{
		domain.RubricClarity:      clarityInstruction,
		domain.RubricTeamStrength: teamStrengthInstruction,
		domain.RubricMarketFit:    marketFitInstruction,
	}
}
