package applies

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"jobx-backend/internal/resumes"
	"jobx-backend/internal/shared/apperr"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(ctx context.Context, u string) error {
	o.urls = append(o.urls, u)
	return o.err
}

func newService(t *testing.T, opener Opener, withResume bool) *Service {
	t.Helper()
	store := resumes.NewMemoryStore(0, 0)
	if withResume {
		err := store.Put(context.Background(), resumes.Record{
			SessionID:  "s1",
			Role:       "Data Scientist",
			Experience: "Experienced",
			Location:   "Boston",
		})
		if err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	return &Service{Resumes: store, Opener: opener}
}

func TestOpenApplicationRequiresResume(t *testing.T) {
	opener := &recordingOpener{}
	svc := newService(t, opener, false)
	_, err := svc.OpenApplication(context.Background(), "s1", "https://jobs.example/1")
	if !errors.Is(err, ErrResumeRequired) {
		t.Fatalf("expected resume_required, got %v", err)
	}
	if len(opener.urls) != 0 {
		t.Fatalf("opener should not run: %v", opener.urls)
	}
}

func TestOpenApplicationValidatesURL(t *testing.T) {
	svc := newService(t, &recordingOpener{}, true)
	cases := map[string]error{
		"   ":                     ErrJobURLRequired,
		"jobs.example/1":          ErrInvalidJobURL,
		"ftp://jobs.example/file": ErrInvalidJobURL,
		"https://":                ErrInvalidJobURL,
	}
	for raw, want := range cases {
		_, err := svc.OpenApplication(context.Background(), "s1", raw)
		if !errors.Is(err, want) {
			t.Fatalf("%q: expected %v, got %v", raw, want, err)
		}
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("%q: expected validation kind", raw)
		}
	}
}

func TestOpenApplicationOpensURL(t *testing.T) {
	opener := &recordingOpener{}
	svc := newService(t, opener, true)
	res, err := svc.OpenApplication(context.Background(), "s1", " https://jobs.example/1 ")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if res.Status != StatusOpened || res.JobURL != "https://jobs.example/1" || res.Note == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(opener.urls) != 1 || opener.urls[0] != "https://jobs.example/1" {
		t.Fatalf("unexpected opens: %v", opener.urls)
	}
}

func TestOpenApplicationFailureIsReported(t *testing.T) {
	svc := newService(t, &recordingOpener{err: errors.New("no display")}, true)
	res, err := svc.OpenApplication(context.Background(), "s1", "https://jobs.example/1")
	if err != nil {
		t.Fatalf("open failure should not be an error: %v", err)
	}
	if res.Status != StatusFailed || res.Suggestion == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestOpenLinkedInSearchFallsBackToResume(t *testing.T) {
	opener := &recordingOpener{}
	svc := newService(t, opener, true)
	res, err := svc.OpenLinkedInSearch(context.Background(), "s1", "", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	u, err := url.Parse(res.SearchURL)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := u.Query().Get("keywords"); got != "Data Scientist AND Experienced AND Hiring" {
		t.Fatalf("unexpected keywords %q", got)
	}
	if u.Host != "www.linkedin.com" || u.Path != "/jobs/search/" {
		t.Fatalf("unexpected url %s", res.SearchURL)
	}
	if len(opener.urls) != 1 || opener.urls[0] != res.SearchURL {
		t.Fatalf("unexpected opens: %v", opener.urls)
	}

	res, err = svc.OpenLinkedInSearch(context.Background(), "s1", "Go Developer", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if res.SearchURL != LinkedInSearchURL("Go Developer", "Experienced") {
		t.Fatalf("unexpected url %s", res.SearchURL)
	}
}

func TestOpenLinkedInSearchRequiresResume(t *testing.T) {
	svc := newService(t, &recordingOpener{}, false)
	if _, err := svc.OpenLinkedInSearch(context.Background(), "s1", "Go Developer", "Fresher"); !errors.Is(err, ErrResumeRequired) {
		t.Fatalf("expected resume_required, got %v", err)
	}
}
