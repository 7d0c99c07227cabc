package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chordfund.app/api-server/internal/mail"
	"chordfund.app/api-server/internal/model"
	"chordfund.app/api-server/internal/service"
	"chordfund.app/api-server/internal/store"
)

type fakeMemberStore struct {
	members map[string]*model.TeamMember // keyed by email

	tokenWrites   int
	setTokenErr   error
	acceptErr     error
	acceptedToken string
}

func memberKey(email string) string { return email }

func (f *fakeMemberStore) GetByProjectAndEmail(_ context.Context, projectID int64, email string) (*model.TeamMember, error) {
	m, ok := f.members[memberKey(email)]
	if !ok || m.ProjectID != projectID {
		return nil, store.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (f *fakeMemberStore) GetByInviteToken(_ context.Context, token string) (*model.TeamMember, error) {
	for _, m := range f.members {
		if m.InviteToken != nil && *m.InviteToken == token {
			out := *m
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeMemberStore) Create(_ context.Context, member *model.TeamMember) error {
	f.members[memberKey(member.Email)] = member
	return nil
}

func (f *fakeMemberStore) SetInviteToken(_ context.Context, projectID int64, email, token string) (*model.TeamMember, error) {
	if f.setTokenErr != nil {
		return nil, f.setTokenErr
	}
	m, ok := f.members[memberKey(email)]
	if !ok || m.ProjectID != projectID || m.InviteToken != nil {
		return nil, store.ErrNotFound
	}
	f.tokenWrites++
	t := token
	m.InviteToken = &t
	m.Status = model.InviteStatusInvited
	out := *m
	return &out, nil
}

func (f *fakeMemberStore) Accept(_ context.Context, token, walletAddress string) (*model.TeamMember, error) {
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	for _, m := range f.members {
		if m.InviteToken != nil && *m.InviteToken == token {
			w := walletAddress
			m.Status = model.InviteStatusAccepted
			m.WalletAddress = &w
			f.acceptedToken = token
			out := *m
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeMemberStore) ListByProject(_ context.Context, projectID int64) ([]model.TeamMember, error) {
	var out []model.TeamMember
	for _, m := range f.members {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeProjectStore struct {
	projects map[int64]*model.Project
}

func (f *fakeProjectStore) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (f *fakeProjectStore) GetBySlug(_ context.Context, slug string) (*model.Project, error) {
	for _, p := range f.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProjectStore) Create(_ context.Context, project *model.Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectStore) ListByCreator(_ context.Context, userID int64) ([]model.Project, error) {
	var out []model.Project
	for _, p := range f.projects {
		if p.CreatorUserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	users map[int64]*model.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) UpsertByWorkOSID(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeMailer struct {
	sent    []mail.Message
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

var _ = Describe("InviteService", func() {
	var (
		members  *fakeMemberStore
		projects *fakeProjectStore
		users    *fakeUserStore
		mailer   *fakeMailer
		svc      service.InviteService
		ctx      context.Context
	)

	const baseURL = "https://chordfund.app"

	BeforeEach(func() {
		ctx = context.Background()
		members = &fakeMemberStore{members: map[string]*model.TeamMember{
			"ada@example.com": {
				ID:        7,
				ProjectID: 42,
				Email:     "ada@example.com",
				Name:      "Ada",
				Role:      "producer",
				Status:    model.InviteStatusNotInvited,
			},
		}}
		projects = &fakeProjectStore{projects: map[int64]*model.Project{
			42: {ID: 42, CreatorUserID: 1, Name: "Neon Tapes", Slug: "neon-tapes"},
		}}
		users = &fakeUserStore{users: map[int64]*model.User{
			1: {ID: 1, Name: "Grace", Email: "grace@example.com"},
		}}
		mailer = &fakeMailer{}
		svc = service.NewInviteService(members, projects, users, mailer, baseURL, "Chordfund <invites@chordfund.app>")
	})

	Describe("EnsureInvite", func() {
		It("issues a token once and reuses it on later calls", func() {
			first, err := svc.EnsureInvite(ctx, 42, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Token).NotTo(BeEmpty())

			second, err := svc.EnsureInvite(ctx, 42, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Token).To(Equal(first.Token))
			Expect(second.URL).To(Equal(first.URL))
			Expect(members.tokenWrites).To(Equal(1))
		})

		It("builds the link deterministically from base URL, token and project", func() {
			token := "11111111-2222-3333-4444-555555555555"
			members.members["ada@example.com"].InviteToken = &token

			link, err := svc.EnsureInvite(ctx, 42, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(link.URL).To(Equal("https://chordfund.app/invite?token=11111111-2222-3333-4444-555555555555&project_id=42"))
			Expect(members.tokenWrites).To(BeZero())
		})

		It("flips status to invited on first issuance", func() {
			_, err := svc.EnsureInvite(ctx, 42, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(members.members["ada@example.com"].Status).To(Equal(model.InviteStatusInvited))
		})

		It("fails when no team member exists", func() {
			_, err := svc.EnsureInvite(ctx, 42, "nobody@example.com")
			Expect(err).To(MatchError(service.ErrInviteNotFound))
		})

		It("rejects empty identifiers", func() {
			_, err := svc.EnsureInvite(ctx, 0, "ada@example.com")
			Expect(err).To(MatchError(service.ErrMissingFields))

			_, err = svc.EnsureInvite(ctx, 42, "")
			Expect(err).To(MatchError(service.ErrMissingFields))
		})

		It("adopts the winner's token when a concurrent issuance wins the write", func() {
			winner := "winner-token"
			members.setTokenErr = store.ErrNotFound
			call := 0
			// First read sees no token; the re-read after the failed
			// conditional write sees the winner's token.
			original := members.members["ada@example.com"]
			membersCopy := *original
			membersCopy.InviteToken = &winner
			lookup := []*model.TeamMember{original, &membersCopy}

			stub := &stubMemberStore{fakeMemberStore: members, onGet: func() *model.TeamMember {
				m := lookup[call]
				if call < len(lookup)-1 {
					call++
				}
				return m
			}}
			svc = service.NewInviteService(stub, projects, users, mailer, baseURL, "from")

			link, err := svc.EnsureInvite(ctx, 42, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(link.Token).To(Equal(winner))
		})
	})

	Describe("Send", func() {
		It("dispatches an email embedding name, role and link", func() {
			err := svc.Send(ctx, service.SendInviteParams{
				ProjectID: 42,
				Email:     "ada@example.com",
				Name:      "Ada",
				Role:      "producer",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(mailer.sent).To(HaveLen(1))

			msg := mailer.sent[0]
			Expect(msg.To).To(Equal("ada@example.com"))
			Expect(msg.HTML).To(ContainSubstring("Ada"))
			Expect(msg.HTML).To(ContainSubstring("producer"))
			Expect(msg.HTML).To(ContainSubstring("/invite?token="))
		})

		It("does not email when the member is unknown", func() {
			err := svc.Send(ctx, service.SendInviteParams{
				ProjectID: 42,
				Email:     "nobody@example.com",
				Name:      "Nobody",
				Role:      "producer",
			})
			Expect(err).To(MatchError(service.ErrInviteNotFound))
			Expect(mailer.sent).To(BeEmpty())
		})

		It("propagates delivery errors after the token is committed", func() {
			mailer.sendErr = &mail.DeliveryError{StatusCode: 422, Payload: "bad from"}

			err := svc.Send(ctx, service.SendInviteParams{
				ProjectID: 42,
				Email:     "ada@example.com",
				Name:      "Ada",
				Role:      "producer",
			})

			var deliveryErr *mail.DeliveryError
			Expect(errors.As(err, &deliveryErr)).To(BeTrue())
			// Token survived the failed delivery for a manual resend.
			Expect(members.members["ada@example.com"].InviteToken).NotTo(BeNil())
		})
	})

	Describe("Verify", func() {
		It("projects the invite into a display payload", func() {
			token := "tok-1"
			members.members["ada@example.com"].InviteToken = &token

			details, err := svc.Verify(ctx, "tok-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(details.ProjectName).To(Equal("Neon Tapes"))
			Expect(details.ProjectSlug).To(Equal("neon-tapes"))
			Expect(details.Role).To(Equal("producer"))
			Expect(details.InviterName).To(Equal("Grace"))
		})

		It("reports unknown tokens as not found", func() {
			_, err := svc.Verify(ctx, "does-not-exist")
			Expect(err).To(MatchError(service.ErrInviteNotFound))
		})
	})

	Describe("Accept", func() {
		It("binds the wallet and flips status, leaving identity fields alone", func() {
			token := "tok-1"
			members.members["ada@example.com"].InviteToken = &token
			members.members["ada@example.com"].Status = model.InviteStatusInvited

			member, err := svc.Accept(ctx, "tok-1", "0xabc")
			Expect(err).NotTo(HaveOccurred())
			Expect(member.Status).To(Equal(model.InviteStatusAccepted))
			Expect(*member.WalletAddress).To(Equal("0xabc"))
			Expect(member.Email).To(Equal("ada@example.com"))
			Expect(member.Role).To(Equal("producer"))
			Expect(member.ProjectID).To(Equal(int64(42)))
		})

		It("rejects unknown tokens", func() {
			_, err := svc.Accept(ctx, "does-not-exist", "0xabc")
			Expect(err).To(MatchError(service.ErrInviteNotFound))
		})

		It("rejects empty wallet addresses", func() {
			_, err := svc.Accept(ctx, "tok-1", "")
			Expect(err).To(MatchError(service.ErrMissingFields))
		})
	})
})

// stubMemberStore overrides reads so the token-issuance race can be
// simulated deterministically.
type stubMemberStore struct {
	*fakeMemberStore
	onGet func() *model.TeamMember
}

func (s *stubMemberStore) GetByProjectAndEmail(_ context.Context, _ int64, _ string) (*model.TeamMember, error) {
	return s.onGet(), nil
}
