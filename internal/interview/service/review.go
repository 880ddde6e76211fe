package service

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/errgroup"

	"leetcoach/internal/feedback/prompts"
	"leetcoach/internal/interview/models"
	id "leetcoach/pkg/domain"
	"leetcoach/pkg/requestcontext"
)

// Review saves the code, then asks for a graded review and a reference
// solution in parallel. Stored session answers take precedence over the
// optional request fields, which only fill stages the session lacks.
// Unparseable review output degrades to models.DefaultReview.
func (s *Service) Review(ctx context.Context, userID id.UserID, req *models.CodeReviewRequest) (*models.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, s.failed(StageReview, err)
	}
	q, err := s.question(req.QuestionID)
	if err != nil {
		return nil, s.failed(StageReview, err)
	}
	session, err := s.save(ctx, userID, req.QuestionID, models.Patch{Code: &req.Code, Language: &req.Language})
	if err != nil {
		return nil, s.failed(StageReview, err)
	}

	reviewPrompt := prompts.Review(q, reviewContext(session, req))
	solutionPrompt := prompts.Solution(q, req.Language)

	var raw, solution string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.generate(gctx, reviewPrompt)
		raw = out
		return err
	})
	g.Go(func() error {
		out, err := s.generate(gctx, solutionPrompt)
		solution = out
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.unavailable(ctx, StageReview, err)
	}

	review, ok := ParseReview(raw)
	if !ok {
		s.metrics.IncrementReviewDegraded()
		s.logger.WarnContext(ctx, "review output not parseable, using default review",
			"question_id", req.QuestionID,
			"output_chars", len(raw),
			"request_id", requestcontext.RequestID(ctx),
		)
		review = models.DefaultReview()
	}
	s.metrics.RecordSubmission(StageReview, "ok")
	return &models.ReviewResponse{
		Agent:          models.AgentCodeReview,
		Review:         review,
		ActualSolution: trimCode(solution),
	}, nil
}

func reviewContext(session *models.Session, req *models.CodeReviewRequest) prompts.ReviewContext {
	return prompts.ReviewContext{
		Clarification: prefer(session.Clarification, req.Clarification),
		BruteForce: prompts.Stage{
			Idea:            prefer(session.BruteForce, req.BruteForce),
			TimeComplexity:  prefer(session.BruteForceTimeComplexity, req.BruteForceTimeComplexity),
			SpaceComplexity: prefer(session.BruteForceSpaceComplexity, req.BruteForceSpaceComplexity),
		},
		Optimize: prompts.Stage{
			Idea:            prefer(session.Optimize, req.Optimize),
			TimeComplexity:  prefer(session.OptimizeTimeComplexity, req.OptimizeTimeComplexity),
			SpaceComplexity: prefer(session.OptimizeSpaceComplexity, req.OptimizeSpaceComplexity),
		},
		Code:     session.Code,
		Language: session.Language,
	}
}

func prefer(stored string, fallback *string) string {
	if stored != "" || fallback == nil {
		return stored
	}
	return *fallback
}

// ParseReview decodes the first well-formed top-level JSON object in raw.
// Models often wrap the object in prose or code fences. Objects nested in a
// malformed one are never considered, and a well-formed object that does not
// fit models.Review ends the search.
func ParseReview(raw string) (*models.Review, bool) {
	for i := strings.IndexByte(raw, '{'); i >= 0; {
		next := i + 1
		if end := objectEnd(raw[i:]); end > 0 {
			candidate := raw[i : i+end+1]
			if json.Valid([]byte(candidate)) {
				var review models.Review
				if err := json.Unmarshal([]byte(candidate), &review); err != nil {
					return nil, false
				}
				if review.Coding.LineByLine == nil {
					review.Coding.LineByLine = []any{}
				}
				return &review, true
			}
			next = i + end + 1
		}
		j := strings.IndexByte(raw[next:], '{')
		if j < 0 {
			break
		}
		i = next + j
	}
	return nil, false
}

// objectEnd returns the index of the brace closing the object that opens at
// s[0], skipping braces inside JSON strings. It returns -1 when the object is
// never closed.
func objectEnd(s string) int {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func trimCode(s string) string {
	return strings.TrimSpace(s)
}
