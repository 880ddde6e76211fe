package service

import (
	"context"

	"leetcoach/internal/feedback/prompts"
	"leetcoach/internal/interview/models"
	id "leetcoach/pkg/domain"
)

func (s *Service) Clarify(ctx context.Context, userID id.UserID, req *models.ClarifyRequest) (*models.StageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, s.failed(StageClarify, err)
	}
	q, err := s.question(req.QuestionID)
	if err != nil {
		return nil, s.failed(StageClarify, err)
	}
	if _, err := s.save(ctx, userID, req.QuestionID, models.Patch{Clarification: &req.UserInput}); err != nil {
		return nil, s.failed(StageClarify, err)
	}

	text, err := s.generate(ctx, prompts.Clarify(q, req.UserInput))
	if err != nil {
		return nil, s.unavailable(ctx, StageClarify, err)
	}
	s.metrics.RecordSubmission(StageClarify, "ok")
	return &models.StageResponse{Agent: models.AgentClarification, Response: text}, nil
}

func (s *Service) BruteForce(ctx context.Context, userID id.UserID, req *models.StageRequest) (*models.StageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, s.failed(StageBruteForce, err)
	}
	q, err := s.question(req.QuestionID)
	if err != nil {
		return nil, s.failed(StageBruteForce, err)
	}
	_, err = s.save(ctx, userID, req.QuestionID, models.Patch{
		BruteForce:                &req.UserIdea,
		BruteForceTimeComplexity:  req.TimeComplexity,
		BruteForceSpaceComplexity: req.SpaceComplexity,
	})
	if err != nil {
		return nil, s.failed(StageBruteForce, err)
	}

	text, err := s.generate(ctx, prompts.BruteForce(q, stageOf(req)))
	if err != nil {
		return nil, s.unavailable(ctx, StageBruteForce, err)
	}
	s.metrics.RecordSubmission(StageBruteForce, "ok")
	return &models.StageResponse{Agent: models.AgentBruteForce, Response: text}, nil
}

// Optimize feeds the stored brute-force idea into the prompt.
func (s *Service) Optimize(ctx context.Context, userID id.UserID, req *models.StageRequest) (*models.StageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, s.failed(StageOptimize, err)
	}
	q, err := s.question(req.QuestionID)
	if err != nil {
		return nil, s.failed(StageOptimize, err)
	}
	session, err := s.save(ctx, userID, req.QuestionID, models.Patch{
		Optimize:                &req.UserIdea,
		OptimizeTimeComplexity:  req.TimeComplexity,
		OptimizeSpaceComplexity: req.SpaceComplexity,
	})
	if err != nil {
		return nil, s.failed(StageOptimize, err)
	}

	text, err := s.generate(ctx, prompts.Optimize(q, stageOf(req), session.BruteForce))
	if err != nil {
		return nil, s.unavailable(ctx, StageOptimize, err)
	}
	s.metrics.RecordSubmission(StageOptimize, "ok")
	return &models.StageResponse{Agent: models.AgentOptimize, Response: text}, nil
}

// FunctionDefinition returns a starter stub. It needs no session, and a zero
// question id selects the first question.
func (s *Service) FunctionDefinition(ctx context.Context, req *models.FunctionDefinitionRequest) (*models.FunctionDefinitionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, s.failed(StageFunctionDefinition, err)
	}
	q, err := s.questions.Resolve(id.QuestionID(req.QuestionID))
	if err != nil {
		return nil, s.failed(StageFunctionDefinition, s.questionError(req.QuestionID, err))
	}

	text, err := s.generate(ctx, prompts.FunctionDefinition(q, req.Language))
	if err != nil {
		return nil, s.unavailable(ctx, StageFunctionDefinition, err)
	}
	s.metrics.RecordSubmission(StageFunctionDefinition, "ok")
	return &models.FunctionDefinitionResponse{FunctionDefinition: trimCode(text)}, nil
}

func stageOf(req *models.StageRequest) prompts.Stage {
	return prompts.Stage{
		Idea:            req.UserIdea,
		TimeComplexity:  deref(req.TimeComplexity),
		SpaceComplexity: deref(req.SpaceComplexity),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
