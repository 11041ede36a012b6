package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinema-tickets/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RateLimitTestSuite struct {
	suite.Suite
	app         *Application
	redisClient *mocks.MockRedisClient
}

func (s *RateLimitTestSuite) SetupTest() {
	s.redisClient = new(mocks.MockRedisClient)

	s.app = newTestApplication(s.T(), func(a *Application) {
		a.redis = s.redisClient
		a.config.RateLimit = RateLimitConfig{
			Enabled:        true,
			Prefix:         "rl",
			Capacity:       5,
			RefillTokens:   1,
			RefillInterval: time.Second,
			TTL:            time.Minute,
		}
	})
}

func TestRateLimitSuite(t *testing.T) {
	suite.Run(t, new(RateLimitTestSuite))
}

func (s *RateLimitTestSuite) TestRateLimit() {
	bucketKey := []string{"rl:ip:192.0.2.1"}

	tests := []struct {
		name           string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantNextCalled bool
		wantHeaders    map[string]string
	}{
		{
			name: "should let the request through while tokens remain",
			setupMocks: func() {
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, bucketKey, mock.Anything).
					Return(redis.NewCmdResult([]interface{}{int64(1), int64(4), int64(0)}, nil)).Once()
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
			wantHeaders: map[string]string{
				"X-RateLimit-Limit":     "5",
				"X-RateLimit-Remaining": "4",
			},
		},
		{
			name: "should reject the request when the bucket is empty",
			setupMocks: func() {
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, bucketKey, mock.Anything).
					Return(redis.NewCmdResult([]interface{}{int64(0), int64(0), int64(1500)}, nil)).Once()
			},
			wantStatus:     http.StatusTooManyRequests,
			wantErrMessage: ErrRateLimitExceeded,
			wantHeaders: map[string]string{
				"X-RateLimit-Remaining": "0",
				"Retry-After":           "2",
			},
		},
		{
			name: "should load the script when redis does not know it",
			setupMocks: func() {
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, bucketKey, mock.Anything).
					Return(redis.NewCmdResult(nil, mocks.MockRedisError{Msg: "NOSCRIPT No matching script"})).Once()
				s.redisClient.On("Eval", mock.Anything, mock.Anything, bucketKey, mock.Anything).
					Return(redis.NewCmdResult([]interface{}{int64(1), int64(3), int64(0)}, nil)).Once()
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name: "should let the request through when redis fails",
			setupMocks: func() {
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, bucketKey, mock.Anything).
					Return(redis.NewCmdResult(nil, errors.New("connection refused"))).Once()
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			defer s.redisClient.AssertExpectations(s.T())

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			w, r := executeRequest(s.T(), http.MethodGet, "/prices", nil)
			r.RemoteAddr = "192.0.2.1:51234"

			s.app.rateLimit(next).ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
			s.Equal(tt.wantNextCalled, nextCalled)

			for k, v := range tt.wantHeaders {
				s.Equal(v, w.Header().Get(k), "header %s", k)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestRateLimitDisabled(t *testing.T) {
	redisClient := new(mocks.MockRedisClient)
	app := newTestApplication(t, func(a *Application) {
		a.redis = redisClient
	})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	w := httptest.NewRecorder()
	app.rateLimit(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/prices", nil))

	if !called {
		t.Error("expected request to reach the next handler")
	}
	redisClient.AssertNotCalled(t, "EvalSha")
}

func TestRateLimitKey(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:1234", "rl:ip:192.0.2.1"},
		{"[2001:db8::1]:443", "rl:ip:2001:db8::1"},
		{"192.0.2.7", "rl:ip:192.0.2.7"},
		{"", "rl:ip:unknown"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tt.remoteAddr

		if got := rateLimitKey("rl", r); got != tt.want {
			t.Errorf("rateLimitKey(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}
