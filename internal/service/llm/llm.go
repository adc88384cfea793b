package llm

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

// Logger interface for service logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Common errors
var (
	// ErrProviderUnavailable means no AI provider is configured for the
	// requested operation. Callers fall back to deterministic behavior
	// where one exists.
	ErrProviderUnavailable = errors.New("AI provider not available")
	// ErrAPIRequestFailed means a configured provider was called and failed
	ErrAPIRequestFailed = errors.New("AI provider request failed")
	// ErrResponseProcessing means the provider answered but the response
	// could not be parsed
	ErrResponseProcessing = errors.New("failed to process AI provider response")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
)

// DefaultLogger provides a basic implementation of the Logger interface
type DefaultLogger struct{}

func (l *DefaultLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Printf("[DEBUG] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Printf("[INFO] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Printf("[ERROR] %s %v", msg, keysAndValues)
}

// Provider is the analysis capability injected into the SEO handlers. It is
// selected once at startup; there is no package-level client.
type Provider interface {
	// AnalyzeContent returns a structured SEO analysis for a draft
	AnalyzeContent(ctx context.Context, request *AnalysisRequest) (*AnalysisResult, error)

	// SuggestKeywords proposes keywords for a topic
	SuggestKeywords(ctx context.Context, topic string, existing []string) ([]models.SuggestedKeyword, error)

	// ImproveContent rewrites content applying one suggestion
	ImproveContent(ctx context.Context, content, suggestion, category string) (string, error)

	// GenerateOutline produces an article outline for a topic
	GenerateOutline(ctx context.Context, topic string, keywords []string) (*ContentOutline, error)

	// Name returns the provider name
	Name() string

	// Close performs any necessary cleanup
	Close() error
}

// Service wraps a Provider with caching, rate limiting and retries
type Service struct {
	provider   Provider
	redis      *redis.Client
	limiter    *rate.Limiter
	cacheTTL   time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     Logger
}

// ServiceOptions contains configuration for the LLM service
type ServiceOptions struct {
	Provider    Provider
	RedisClient *redis.Client
	RateLimit   rate.Limit
	RateBurst   int
	CacheTTL    time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	Logger      Logger
}

// NewService creates a new LLM service with the specified options
func NewService(opts ServiceOptions) *Service {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Limit(10)
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 1
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 1 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = &DefaultLogger{}
	}

	return &Service{
		provider:   opts.Provider,
		redis:      opts.RedisClient,
		limiter:    rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		cacheTTL:   opts.CacheTTL,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		logger:     opts.Logger,
	}
}

// ProviderName returns the name of the configured provider
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// analysisCacheKey derives a cache key from the request fields
func analysisCacheKey(request *AnalysisRequest) string {
	h := sha256.New()
	h.Write([]byte(request.Title))
	h.Write([]byte{0})
	h.Write([]byte(request.Content))
	for _, kw := range request.TargetKeywords {
		h.Write([]byte{0})
		h.Write([]byte(kw))
	}
	return fmt.Sprintf("llm:analysis:%x", h.Sum(nil))
}

// AnalyzeContent runs the provider analysis with caching, rate limiting and
// retries. Unavailable providers are not retried.
func (s *Service) AnalyzeContent(ctx context.Context, request *AnalysisRequest) (*AnalysisResult, error) {
	startTime := time.Now()

	cacheKey := analysisCacheKey(request)
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached AnalysisResult
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				cached.CachedResult = true
				cached.ProcessingTime = time.Since(startTime)
				s.logger.Debug("Cache hit for content analysis", "provider", cached.ProviderUsed)
				return &cached, nil
			}
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Error("Rate limit exceeded", "error", err)
		return nil, ErrRateLimitExceeded
	}

	var result *AnalysisResult
	var lastErr error

	for retry := 0; retry <= s.maxRetries; retry++ {
		if retry > 0 {
			s.logger.Info("Retrying analysis request",
				"attempt", retry,
				"provider", s.provider.Name())

			select {
			case <-time.After(s.retryDelay * time.Duration(1<<uint(retry-1))):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, lastErr = s.provider.AnalyzeContent(ctx, request)
		if lastErr == nil {
			break
		}
		if errors.Is(lastErr, ErrProviderUnavailable) {
			return nil, lastErr
		}

		s.logger.Error("Analysis request failed",
			"error", lastErr,
			"provider", s.provider.Name(),
			"retry", retry)
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIRequestFailed, lastErr)
	}

	result.ProviderUsed = s.provider.Name()
	result.ProcessingTime = time.Since(startTime)
	result.CachedResult = false

	if s.redis != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Error("Failed to cache analysis", "error", err)
			}
		}
	}

	s.logger.Info("Content analysis completed",
		"provider", s.provider.Name(),
		"overall_score", result.OverallScore,
		"time", result.ProcessingTime)

	return result, nil
}

// SuggestKeywords proxies to the provider with rate limiting
func (s *Service) SuggestKeywords(ctx context.Context, topic string, existing []string) ([]models.SuggestedKeyword, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, ErrRateLimitExceeded
	}

	keywords, err := s.provider.SuggestKeywords(ctx, topic, existing)
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAPIRequestFailed, err)
	}
	return keywords, nil
}

// ImproveContent proxies to the provider with rate limiting
func (s *Service) ImproveContent(ctx context.Context, content, suggestion, category string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", ErrRateLimitExceeded
	}

	improved, err := s.provider.ImproveContent(ctx, content, suggestion, category)
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrAPIRequestFailed, err)
	}
	return improved, nil
}

// GenerateOutline proxies to the provider with rate limiting
func (s *Service) GenerateOutline(ctx context.Context, topic string, keywords []string) (*ContentOutline, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, ErrRateLimitExceeded
	}

	outline, err := s.provider.GenerateOutline(ctx, topic, keywords)
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAPIRequestFailed, err)
	}
	return outline, nil
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.provider.Close()
}

var codeBlocksRe = regexp.MustCompile("(?s)```(json)?(.+?)```")

// CleanJSONResponse strips markdown code fences that models sometimes wrap
// around JSON output
func CleanJSONResponse(text string) string {
	if matches := codeBlocksRe.FindStringSubmatch(text); len(matches) > 2 {
		return strings.TrimSpace(matches[2])
	}
	return strings.TrimSpace(text)
}
