package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/jobcard-management/internal/auth"
	"github.com/frahmantamala/jobcard-management/internal/transport/middleware"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Audit Trail", func() {
	var (
		sessions *mockSessionService
		writer   *mockAuditWriter
		trail    *middleware.AuditTrail
		handler  *countingHandler
		clerk    *auth.User
	)

	BeforeEach(func() {
		sessions = newMockSessionService()
		writer = &mockAuditWriter{}
		trail = middleware.NewAuditTrail(writer, sessions, testLogger())
		handler = &countingHandler{}

		clerk = &auth.User{ID: 3, Email: "clerk@mail.com", Role: auth.RoleClerk, IsActive: true}
		sessions.users["clerk-token"] = clerk
	})

	authedRequest := func(method, target string) *http.Request {
		r := httptest.NewRequest(method, target, nil)
		return r.WithContext(auth.ContextWithUser(r.Context(), clerk))
	}

	Context("on a non-mutating request", func() {
		It("should pass through and write no entry", func() {
			rec := httptest.NewRecorder()
			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/jobcards"))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(handler.calls).To(Equal(1))
			Expect(writer.entries).To(BeEmpty())
		})
	})

	Context("on a successful mutating request", func() {
		It("should write exactly one entry with the actor and action", func() {
			handler.status = http.StatusCreated
			handler.body = `{"id": 17, "reference": "JC-2026-001"}`

			rec := httptest.NewRecorder()
			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/jobcards"))

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(writer.entries).To(HaveLen(1))

			entry := writer.entries[0]
			Expect(entry.ActorID).To(Equal(int64(3)))
			Expect(entry.EntityType).To(Equal("jobcard"))
			Expect(entry.Action).To(Equal(http.MethodPost))
		})

		It("should take the entity id from the JSON response body when the route has none", func() {
			handler.status = http.StatusCreated
			handler.body = `{"id": 17}`

			rec := httptest.NewRecorder()
			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/jobcards"))

			Expect(writer.entries).To(HaveLen(1))
			Expect(writer.entries[0].EntityID).To(Equal("17"))
		})

		It("should prefer the id route parameter over the response body", func() {
			handler.body = `{"id": 999}`

			router := chi.NewRouter()
			router.With(trail.RecordAudit("jobcard")).Patch("/jobcards/{id}", handler.ServeHTTP)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/jobcards/17"))

			Expect(writer.entries).To(HaveLen(1))
			Expect(writer.entries[0].EntityID).To(Equal("17"))
		})

		It("should leave the entity id empty when neither source has one", func() {
			handler.body = `{"status": "ok"}`

			rec := httptest.NewRecorder()
			trail.RecordAudit("price")(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/prices"))

			Expect(writer.entries).To(HaveLen(1))
			Expect(writer.entries[0].EntityID).To(BeEmpty())
		})
	})

	Context("on a failed mutating request", func() {
		It("should write no entry for a 4xx response", func() {
			handler.status = http.StatusUnprocessableEntity

			rec := httptest.NewRecorder()
			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/jobcards"))

			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(writer.entries).To(BeEmpty())
		})

		It("should write no entry for a 5xx response", func() {
			handler.status = http.StatusInternalServerError

			rec := httptest.NewRecorder()
			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/jobcards"))

			Expect(writer.entries).To(BeEmpty())
		})
	})

	Context("when the audit write fails", func() {
		It("should leave the business response untouched", func() {
			writer.failError = errors.New("disk full")
			handler.status = http.StatusCreated
			handler.body = `{"id": 4}`

			rec := httptest.NewRecorder()
			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/jobcards"))

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(rec.Body.String()).To(MatchJSON(`{"id": 4}`))
		})
	})

	Context("without an authenticated actor", func() {
		It("should skip the entry rather than attribute it to nobody", func() {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/jobcards", nil)

			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, r)

			Expect(writer.entries).To(BeEmpty())
		})
	})

	Context("standalone, without an upstream guard", func() {
		It("should resolve the actor from the request credential", func() {
			handler.body = `{"id": 8}`

			r := httptest.NewRequest(http.MethodPost, "/api/v1/jobcards", nil)
			r.Header.Set("Authorization", "Bearer clerk-token")

			rec := httptest.NewRecorder()
			trail.RecordAudit("jobcard")(handler).ServeHTTP(rec, r)

			Expect(writer.entries).To(HaveLen(1))
			Expect(writer.entries[0].ActorID).To(Equal(int64(3)))
		})
	})
})

var _ = Describe("Composer", func() {
	var (
		sessions *mockSessionService
		writer   *mockAuditWriter
		composer *middleware.Composer
		handler  *countingHandler
	)

	BeforeEach(func() {
		sessions = newMockSessionService()
		writer = &mockAuditWriter{}
		composer = middleware.NewComposer(
			middleware.NewGuard(sessions, testLogger()),
			middleware.NewAuditTrail(writer, sessions, testLogger()),
		)
		handler = &countingHandler{}

		sessions.users["admin-token"] = &auth.User{ID: 1, Email: "admin@mail.com", Role: auth.RoleAdmin, IsActive: true}
		sessions.users["viewer-token"] = &auth.User{ID: 2, Email: "viewer@mail.com", Role: auth.RoleViewer, IsActive: true}
	})

	protect := func() http.Handler {
		return composer.Protect("exporter", auth.RoleAdmin, auth.RoleManager)(handler)
	}

	It("should run the handler and write one entry for an authorized mutation", func() {
		handler.status = http.StatusCreated
		handler.body = `{"id": 12}`

		r := httptest.NewRequest(http.MethodPost, "/api/v1/exporters", nil)
		r.Header.Set("Authorization", "Bearer admin-token")

		rec := httptest.NewRecorder()
		protect().ServeHTTP(rec, r)

		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(handler.calls).To(Equal(1))
		Expect(writer.entries).To(HaveLen(1))
		Expect(writer.entries[0].ActorID).To(Equal(int64(1)))
		Expect(writer.entries[0].EntityType).To(Equal("exporter"))
	})

	It("should write no entry and never invoke the handler for a missing credential", func() {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/exporters", nil)

		rec := httptest.NewRecorder()
		protect().ServeHTTP(rec, r)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(handler.calls).To(BeZero())
		Expect(writer.entries).To(BeEmpty())
	})

	It("should write no entry and never invoke the handler for an insufficient role", func() {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/exporters", nil)
		r.Header.Set("Authorization", "Bearer viewer-token")

		rec := httptest.NewRecorder()
		protect().ServeHTTP(rec, r)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(handler.calls).To(BeZero())
		Expect(writer.entries).To(BeEmpty())
	})
})
