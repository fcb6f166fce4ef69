package usecase

import (
	"context"
	"fmt"

	"github.com/containerq/backend/internal/domain"
	"github.com/containerq/backend/internal/infrastructure/owlery"
	"go.uber.org/zap"
)

// ContainerServiceConfig holds configuration for the container service
type ContainerServiceConfig struct {
	// DefaultKBName is queried when a request names no knowledgebase
	DefaultKBName string
}

// ContainerService finds containers matching a class expression by
// consulting a reasoner
type ContainerService struct {
	reasoner  domain.ReasonerClient
	logger    *zap.Logger
	defaultKB string
}

// NewContainerService creates a new container service with dependencies
func NewContainerService(
	reasoner domain.ReasonerClient,
	logger *zap.Logger,
	config ContainerServiceConfig,
) *ContainerService {
	if logger == nil {
		logger = zap.NewNop()
	}

	defaultKB := config.DefaultKBName
	if defaultKB == "" {
		defaultKB = owlery.DefaultKBName
	}

	return &ContainerService{
		reasoner:  reasoner,
		logger:    logger.Named("containers"),
		defaultKB: defaultKB,
	}
}

// MatchingContainers returns the instances of the request's class expression,
// conjoined with any additional conditions. Instances are requested
// non-directly and with deprecated terms included.
//
// Reasoner failures are logged and reported through the outcome rather
// than returned, so an OK outcome with no instances always means that
// nothing matched.
func (s *ContainerService) MatchingContainers(ctx context.Context, request *domain.MatchRequest) *domain.MatchOutcome {
	if request == nil || request.Spec.QueryString == "" {
		err := fmt.Errorf("%w: class expression is required", domain.ErrInvalidRequest)
		s.logger.Error("rejected match request", zap.Error(err))
		return domain.Failed(err)
	}

	kb := request.KBName
	if kb == "" {
		kb = s.defaultKB
	}

	query := domain.InstancesQuery{
		KBName:            kb,
		Expression:        BuildExpression(request.Spec.QueryString, request.AddlConditions),
		Prefixes:          request.Spec.PrefixMap,
		Direct:            false,
		IncludeDeprecated: true,
	}

	instances, err := s.reasoner.Instances(ctx, query)
	if err != nil {
		s.logger.Error("exception when querying instances",
			zap.String("kb", kb),
			zap.String("expression", query.Expression),
			zap.Error(err))
		return domain.Failed(err)
	}

	s.logger.Debug("instances are", zap.Any("instances", instances))
	return domain.Matched(instances)
}

// MatchingContainers queries the Owlery server at baseURL for containers
// matching spec in the knowledgebase kbName. addlConditions, if not empty,
// is conjoined onto the spec's expression.
func MatchingContainers(
	ctx context.Context,
	spec domain.ClassExpressionSpec,
	baseURL, kbName, addlConditions string,
	logger *zap.Logger,
) *domain.MatchOutcome {
	if baseURL == "" {
		baseURL = owlery.DefaultBaseURL
	}

	service := NewContainerService(owlery.NewClient(baseURL, logger), logger, ContainerServiceConfig{})
	return service.MatchingContainers(ctx, &domain.MatchRequest{
		Spec:           spec,
		KBName:         kbName,
		AddlConditions: addlConditions,
	})
}
