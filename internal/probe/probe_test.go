package probe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/yodataller/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeService answers like a yoda-taller instance for a fixed cast.
type fakeService struct {
	healthy  bool
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/health_check" {
		if !f.healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)

	name := strings.TrimPrefix(r.URL.Path, "/taller/")
	w.Header().Set("Content-Type", "application/json")
	switch name {
	case "Yaddle":
		_, _ = w.Write([]byte(`{"query":"Yaddle","person":"Yaddle","taller":true}`))
	case "Luke Skywalker":
		_, _ = w.Write([]byte(`{"query":"Luke Skywalker","person":"Luke Skywalker","taller":false}`))
	case "Arvel Crynyd":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"query":"Arvel Crynyd","error":"Person's height is unknown"}`))
	case "Spock":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"query":"Spock","error":"Person not found"}`))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"query":"` + name + `","error":"Unexpected error"}`))
	}
}

func verdicts(results []Result) []Verdict {
	out := make([]Verdict, len(results))
	for i, r := range results {
		out[i] = r.Verdict
	}
	return out
}

func TestRun(t *testing.T) {
	Convey("Given a healthy fake service", t, func() {
		fake := &fakeService{healthy: true}
		srv := httptest.NewServer(fake)
		defer srv.Close()

		cfg := &Config{
			BaseURL: srv.URL,
			Names:   []string{"Yaddle", "Luke Skywalker", "Arvel Crynyd", "Spock"},
			Workers: 2,
			Timeout: time.Second,
		}

		Convey("When every name gets a documented answer", func() {
			summary, err := Run(context.Background(), cfg)

			Convey("Then results keep input order and are classified", func() {
				So(err, ShouldBeNil)
				So(summary.RunID, ShouldHaveLength, 36)
				want := []Verdict{VerdictTaller, VerdictNotTaller, VerdictHeightUnknown, VerdictPersonNotFound}
				So(cmp.Diff(want, verdicts(summary.Results)), ShouldBeEmpty)
				So(summary.Counts[VerdictTaller], ShouldEqual, 1)
				So(summary.Failed(), ShouldEqual, 0)
			})

			Convey("And no more than the worker limit ran at once", func() {
				So(fake.maxSeen.Load(), ShouldBeLessThanOrEqualTo, 2)
			})
		})

		Convey("When a name fails unexpectedly", func() {
			cfg.Names = append(cfg.Names, "Jar Jar")
			summary, err := Run(context.Background(), cfg)

			Convey("Then the run reports probe failures", func() {
				So(errors.Is(err, ErrProbeFailures), ShouldBeTrue)
				So(summary.Failed(), ShouldEqual, 1)
				So(summary.Results[4].Status, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})

	Convey("Given an unhealthy fake service", t, func() {
		srv := httptest.NewServer(&fakeService{})
		defer srv.Close()

		_, err := Run(context.Background(), &Config{
			BaseURL: srv.URL, Names: []string{"Yoda"}, Workers: 1, Timeout: time.Second,
		})

		Convey("Then the run stops before probing", func() {
			So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
		})
	})

	Convey("Given an invalid config", t, func() {
		_, err := Run(context.Background(), &Config{BaseURL: "http://x", Workers: 1, Timeout: time.Second})

		Convey("Then validation fails", func() {
			So(errors.Is(err, ErrNoNames), ShouldBeTrue)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given raw answers", t, func() {
		v, err := classify(http.StatusOK, []byte(`{"taller":true}`))
		So(err, ShouldBeNil)
		So(v, ShouldEqual, VerdictTaller)

		v, _ = classify(http.StatusOK, []byte(`{"taller":false}`))
		So(v, ShouldEqual, VerdictNotTaller)

		v, err = classify(http.StatusOK, []byte(`{}`))
		So(v, ShouldEqual, VerdictUnexpected)
		So(err, ShouldNotBeNil)

		v, err = classify(http.StatusBadGateway, []byte(`<html>`))
		So(v, ShouldEqual, VerdictUnexpected)
		So(err, ShouldNotBeNil)
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Given configs with one bad field", t, func() {
		ok := Config{BaseURL: "http://x", Names: []string{"Yoda"}, Workers: 1, Timeout: time.Second}
		So(ok.Validate(), ShouldBeNil)

		cases := []struct {
			mutate func(*Config)
			want   error
		}{
			{func(c *Config) { c.BaseURL = "" }, ErrEmptyBaseURL},
			{func(c *Config) { c.Names = nil }, ErrNoNames},
			{func(c *Config) { c.Workers = 0 }, ErrBadWorkers},
			{func(c *Config) { c.Timeout = 0 }, ErrBadTimeout},
		}
		for _, tc := range cases {
			c := ok
			tc.mutate(&c)
			So(c.Validate(), ShouldEqual, tc.want)
		}
	})
}

func TestNames(t *testing.T) {
	Convey("Given name sources", t, func() {
		Convey("When parsing a comma separated list", func() {
			So(ParseNames(" Luke Skywalker, ,Yoda,"), ShouldResemble, []string{"Luke Skywalker", "Yoda"})
			So(ParseNames(""), ShouldBeEmpty)
		})

		Convey("When reading a names file", func() {
			path := filepath.Join(t.TempDir(), "names.txt")
			So(os.WriteFile(path, []byte("# cast\nYaddle\n\n  Luke Skywalker  \n"), 0o600), ShouldBeNil)
			names, err := ReadNamesFile(path)
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"Yaddle", "Luke Skywalker"})
		})

		Convey("When the file is missing", func() {
			_, err := ReadNamesFile(filepath.Join(t.TempDir(), "nope.txt"))
			So(err, ShouldNotBeNil)
		})
	})
}
