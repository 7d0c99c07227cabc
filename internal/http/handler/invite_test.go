package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chordfund.app/api-server/internal/http/handler"
	"chordfund.app/api-server/internal/mail"
	"chordfund.app/api-server/internal/model"
	"chordfund.app/api-server/internal/service"
)

type mockInviteService struct {
	ensureInviteFn func(ctx context.Context, projectID int64, email string) (*service.InviteLink, error)
	sendFn         func(ctx context.Context, params service.SendInviteParams) error
	verifyFn       func(ctx context.Context, token string) (*service.InviteDetails, error)
	acceptFn       func(ctx context.Context, token, walletAddress string) (*model.TeamMember, error)

	sendCalls   int
	verifyCalls int
	acceptCalls int
}

func (m *mockInviteService) EnsureInvite(ctx context.Context, projectID int64, email string) (*service.InviteLink, error) {
	if m.ensureInviteFn != nil {
		return m.ensureInviteFn(ctx, projectID, email)
	}
	return nil, nil
}

func (m *mockInviteService) Send(ctx context.Context, params service.SendInviteParams) error {
	m.sendCalls++
	if m.sendFn != nil {
		return m.sendFn(ctx, params)
	}
	return nil
}

func (m *mockInviteService) Verify(ctx context.Context, token string) (*service.InviteDetails, error) {
	m.verifyCalls++
	if m.verifyFn != nil {
		return m.verifyFn(ctx, token)
	}
	return nil, service.ErrInviteNotFound
}

func (m *mockInviteService) Accept(ctx context.Context, token, walletAddress string) (*model.TeamMember, error) {
	m.acceptCalls++
	if m.acceptFn != nil {
		return m.acceptFn(ctx, token, walletAddress)
	}
	return nil, service.ErrInviteNotFound
}

type mockIdentityProvider struct {
	identifyFn func(ctx context.Context, sessionID int64) (*service.Identity, error)
}

func (m *mockIdentityProvider) Identify(ctx context.Context, sessionID int64) (*service.Identity, error) {
	if m.identifyFn != nil {
		return m.identifyFn(ctx, sessionID)
	}
	return nil, service.ErrAuthRequired
}

func (m *mockIdentityProvider) LoginURL(state string) (string, error) {
	return "https://auth.example/login", nil
}

var _ = Describe("InviteHandler", func() {
	var (
		router   *gin.Engine
		svc      *mockInviteService
		identity *mockIdentityProvider
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockInviteService{}
		identity = &mockIdentityProvider{}
		h := handler.NewInviteHandler(svc, identity, "https://chordfund.app")

		router.POST("/invites/send", h.Send)
		router.GET("/invites/verify", h.Verify)
		router.POST("/invites/accept", h.Accept)
	})

	sendRequest := func(body map[string]string) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/invites/send", bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Send", func() {
		It("dispatches the invite email", func() {
			svc.sendFn = func(_ context.Context, params service.SendInviteParams) error {
				Expect(params.ProjectID).To(Equal(int64(42)))
				Expect(params.Email).To(Equal("ada@example.com"))
				Expect(params.Role).To(Equal("producer"))
				return nil
			}

			w := sendRequest(map[string]string{
				"email":     "ada@example.com",
				"name":      "Ada",
				"projectId": "42",
				"role":      "producer",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(Equal(true))
		})

		It("rejects requests with missing fields without touching the service", func() {
			for _, body := range []map[string]string{
				{"name": "Ada", "projectId": "42", "role": "producer"},
				{"email": "ada@example.com", "projectId": "42", "role": "producer"},
				{"email": "ada@example.com", "name": "Ada", "role": "producer"},
				{"email": "ada@example.com", "name": "Ada", "projectId": "42"},
			} {
				w := sendRequest(body)
				Expect(w.Code).To(Equal(http.StatusBadRequest))
				var resp map[string]interface{}
				Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp["error"]).To(Equal("Missing required fields"))
			}
			Expect(svc.sendCalls).To(BeZero())
		})

		It("returns 404 when no team member matches", func() {
			svc.sendFn = func(_ context.Context, _ service.SendInviteParams) error {
				return service.ErrInviteNotFound
			}

			w := sendRequest(map[string]string{
				"email":     "nobody@example.com",
				"name":      "Nobody",
				"projectId": "42",
				"role":      "producer",
			})

			Expect(w.Code).To(Equal(http.StatusNotFound))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("No team member found for given email and projectId"))
		})

		It("surfaces delivery failures with the endpoint payload", func() {
			svc.sendFn = func(_ context.Context, _ service.SendInviteParams) error {
				return &mail.DeliveryError{StatusCode: 422, Payload: `{"message":"invalid from"}`}
			}

			w := sendRequest(map[string]string{
				"email":     "ada@example.com",
				"name":      "Ada",
				"projectId": "42",
				"role":      "producer",
			})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("invalid from"))
		})

		It("returns 500 on persistence failure", func() {
			svc.sendFn = func(_ context.Context, _ service.SendInviteParams) error {
				return errors.New("persisting invite token: connection refused")
			}

			w := sendRequest(map[string]string{
				"email":     "ada@example.com",
				"name":      "Ada",
				"projectId": "42",
				"role":      "producer",
			})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Verify", func() {
		authedGet := func(url string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, url, nil)
			req.AddCookie(&http.Cookie{Name: "chordfund_session", Value: "123"})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("rejects links with missing parameters before any lookup", func() {
			w := authedGet("/invites/verify?token=abc")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Invalid invite link"))
			Expect(svc.verifyCalls).To(BeZero())
		})

		It("asks unauthenticated visitors to log in", func() {
			req := httptest.NewRequest(http.MethodGet, "/invites/verify?token=abc&project_id=42", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["login_url"]).To(Equal("https://auth.example/login"))
		})

		It("reports unknown tokens as invalid or expired", func() {
			identity.identifyFn = func(_ context.Context, _ int64) (*service.Identity, error) {
				return &service.Identity{UserID: 1, Email: "ada@example.com"}, nil
			}

			w := authedGet("/invites/verify?token=unknown&project_id=42")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Invalid or expired invite"))
		})

		It("returns invite details for a valid token", func() {
			identity.identifyFn = func(_ context.Context, _ int64) (*service.Identity, error) {
				return &service.Identity{UserID: 1, Email: "ada@example.com"}, nil
			}
			svc.verifyFn = func(_ context.Context, token string) (*service.InviteDetails, error) {
				Expect(token).To(Equal("tok-1"))
				return &service.InviteDetails{
					ProjectID:   42,
					ProjectName: "Neon Tapes",
					ProjectSlug: "neon-tapes",
					Role:        "producer",
					InviterName: "Grace",
				}, nil
			}

			w := authedGet("/invites/verify?token=tok-1&project_id=42")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["project_name"]).To(Equal("Neon Tapes"))
			Expect(resp["role"]).To(Equal("producer"))
			Expect(resp["inviter_name"]).To(Equal("Grace"))
		})
	})

	Describe("Accept", func() {
		acceptRequest := func(body map[string]string, authed bool) *httptest.ResponseRecorder {
			raw, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPost, "/invites/accept", bytes.NewBuffer(raw))
			req.Header.Set("Content-Type", "application/json")
			if authed {
				req.AddCookie(&http.Cookie{Name: "chordfund_session", Value: "123"})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("accepts the invite and returns the project redirect", func() {
			identity.identifyFn = func(_ context.Context, _ int64) (*service.Identity, error) {
				return &service.Identity{UserID: 1, Email: "ada@example.com"}, nil
			}
			svc.verifyFn = func(_ context.Context, _ string) (*service.InviteDetails, error) {
				return &service.InviteDetails{ProjectID: 42, ProjectSlug: "neon-tapes", Role: "producer"}, nil
			}
			svc.acceptFn = func(_ context.Context, token, wallet string) (*model.TeamMember, error) {
				Expect(token).To(Equal("tok-1"))
				Expect(wallet).To(Equal("0xabc"))
				return &model.TeamMember{ID: 7, ProjectID: 42, Status: model.InviteStatusAccepted}, nil
			}

			w := acceptRequest(map[string]string{
				"token":          "tok-1",
				"project_id":     "42",
				"wallet_address": "0xabc",
			}, true)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["redirect_url"]).To(Equal("https://chordfund.app/projects/neon-tapes"))
		})

		It("re-triggers login when no wallet address is available", func() {
			identity.identifyFn = func(_ context.Context, _ int64) (*service.Identity, error) {
				return &service.Identity{UserID: 1, Email: "ada@example.com"}, nil
			}
			svc.verifyFn = func(_ context.Context, _ string) (*service.InviteDetails, error) {
				return &service.InviteDetails{ProjectID: 42, ProjectSlug: "neon-tapes"}, nil
			}

			w := acceptRequest(map[string]string{
				"token":      "tok-1",
				"project_id": "42",
			}, true)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(svc.acceptCalls).To(BeZero())
		})

		It("reports a retryable failure when the acceptance write fails", func() {
			identity.identifyFn = func(_ context.Context, _ int64) (*service.Identity, error) {
				return &service.Identity{UserID: 1, Email: "ada@example.com"}, nil
			}
			svc.verifyFn = func(_ context.Context, _ string) (*service.InviteDetails, error) {
				return &service.InviteDetails{ProjectID: 42, ProjectSlug: "neon-tapes"}, nil
			}
			svc.acceptFn = func(_ context.Context, _, _ string) (*model.TeamMember, error) {
				return nil, errors.New("accepting invite: connection reset")
			}

			w := acceptRequest(map[string]string{
				"token":          "tok-1",
				"project_id":     "42",
				"wallet_address": "0xabc",
			}, true)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			var resp map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Failed to accept invite"))
		})
	})
})
