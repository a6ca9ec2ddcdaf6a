package commons

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nao1215/wikigrab/internal/webclient"
)

// galleryItem renders one category gallery entry.
func galleryItem(name string) string {
	return fmt.Sprintf(
		`<li class="gallerybox"><div class="thumb-wrapper">`+
			`<a class="image" href="/wiki/File:%s">`+
			`<img src="//upload.wikimedia.org/thumb/%s/120px-%s"></a></div></li>`,
		name, name, name)
}

// newTestLocator wires a Locator to the given test server.
func newTestLocator(t *testing.T, server *httptest.Server) *Locator {
	t.Helper()
	client := webclient.New(webclient.WithHTTPClient(server.Client()))
	return NewLocator(client, WithOrigin(server.URL))
}

// TestLocatorLocate tests the two-tier image discovery.
func TestLocatorLocate(t *testing.T) {
	t.Parallel()

	t.Run("finds gallery items on the category page", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/Category:Gravity", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `<html><body><ul class="gallery">%s%s</ul></body></html>`,
				galleryItem("First.jpg"), galleryItem("Second.jpg"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		images := l.Locate(context.Background(), "Gravity", 10)

		if len(images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(images))
		}
		if images[0].Filename != "File:First.jpg" {
			t.Errorf("expected File:First.jpg, got %q", images[0].Filename)
		}
		if images[0].ThumbnailURL != "https://upload.wikimedia.org/thumb/First.jpg/120px-First.jpg" {
			t.Errorf("unexpected thumbnail URL: %q", images[0].ThumbnailURL)
		}
		if images[0].FilePageURL != server.URL+"/wiki/File:First.jpg" {
			t.Errorf("unexpected file page URL: %q", images[0].FilePageURL)
		}
	})

	t.Run("caps results at max", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/Category:Gravity", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `<html><body><ul class="gallery">%s%s%s</ul></body></html>`,
				galleryItem("A.jpg"), galleryItem("B.jpg"), galleryItem("C.jpg"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		images := l.Locate(context.Background(), "Gravity", 2)

		if len(images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(images))
		}
	})

	t.Run("thumbnail containers top up a short gallery", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/Category:Gravity", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `<html><body>
				<ul class="gallery">%s</ul>
				<div class="thumb"><a class="image" href="/wiki/File:Extra.jpg">
					<img src="//upload.wikimedia.org/thumb/Extra.jpg/120px-Extra.jpg"></a></div>
				</body></html>`, galleryItem("Main.jpg"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		images := l.Locate(context.Background(), "Gravity", 10)

		if len(images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(images))
		}
		if images[0].Filename != "File:Main.jpg" || images[1].Filename != "File:Extra.jpg" {
			t.Errorf("unexpected order: %q, %q", images[0].Filename, images[1].Filename)
		}
	})

	t.Run("falls back to media search when the category redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/Category:Obscure_Topic", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/wiki/Special:Search?search=Obscure+Topic", http.StatusFound)
		})
		mux.HandleFunc("/wiki/Special:Search", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body>no such category</body></html>`)
		})
		mux.HandleFunc("/w/index.php", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("title") != "Special:MediaSearch" {
				t.Errorf("expected MediaSearch request, got %q", r.URL.String())
			}
			fmt.Fprint(w, `<html><body>
				<a class="sdms-image-result" href="/wiki/File:Found.jpg">
					<img src="//upload.wikimedia.org/thumb/Found.jpg/220px-Found.jpg"></a>
				</body></html>`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		images := l.Locate(context.Background(), "Obscure Topic", 5)

		if len(images) != 1 {
			t.Fatalf("expected 1 image from search, got %d", len(images))
		}
		if images[0].Filename != "File:Found.jpg" {
			t.Errorf("expected File:Found.jpg, got %q", images[0].Filename)
		}
	})

	t.Run("falls back to media search when the category has no images", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/Category:Emptiness", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body><p>This category is empty.</p></body></html>`)
		})
		mux.HandleFunc("/w/index.php", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body>
				<a class="sdms-image-result" href="/wiki/File:Searched.jpg">
					<img src="//upload.wikimedia.org/thumb/Searched.jpg/220px-Searched.jpg"></a>
				</body></html>`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		images := l.Locate(context.Background(), "Emptiness", 5)

		if len(images) != 1 {
			t.Fatalf("expected 1 image from search, got %d", len(images))
		}
	})

	t.Run("legacy search markup is used when modern markup is absent", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/Category:Legacy", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body></body></html>`)
		})
		mux.HandleFunc("/w/index.php", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body>
				<div class="searchResultImage">
					<a href="/wiki/File:Old.jpg"></a>
					<img src="//upload.wikimedia.org/thumb/Old.jpg/120px-Old.jpg">
				</div>
				</body></html>`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		images := l.Locate(context.Background(), "Legacy", 5)

		if len(images) != 1 {
			t.Fatalf("expected 1 legacy result, got %d", len(images))
		}
		if images[0].Filename != "File:Old.jpg" {
			t.Errorf("expected File:Old.jpg, got %q", images[0].Filename)
		}
	})

	t.Run("returns nothing when both tiers are empty", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body></body></html>`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		if images := l.Locate(context.Background(), "Nothing", 5); len(images) != 0 {
			t.Errorf("expected no images, got %d", len(images))
		}
	})

	t.Run("non-positive max short-circuits", func(t *testing.T) {
		t.Parallel()

		l := NewLocator(webclient.New())
		if images := l.Locate(context.Background(), "Gravity", 0); images != nil {
			t.Errorf("expected nil, got %v", images)
		}
	})

	t.Run("percent-encoded filenames are decoded", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/Category:Café", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<html><body><ul class="gallery">
				<li class="gallerybox">
					<a class="image" href="/wiki/File:Caf%C3%A9_terrace.jpg">
					<img src="//upload.wikimedia.org/thumb/cafe.jpg/120px-cafe.jpg"></a>
				</li></ul></body></html>`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		l := newTestLocator(t, server)
		images := l.Locate(context.Background(), "Café", 5)

		if len(images) != 1 {
			t.Fatalf("expected 1 image, got %d", len(images))
		}
		if images[0].Filename != "File:Café_terrace.jpg" {
			t.Errorf("expected decoded filename, got %q", images[0].Filename)
		}
	})
}

// TestNormalizeURL tests protocol-relative address handling.
func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		addr string
		want string
	}{
		{name: "protocol-relative", addr: "//upload.wikimedia.org/x.jpg", want: "https://upload.wikimedia.org/x.jpg"},
		{name: "already https", addr: "https://upload.wikimedia.org/x.jpg", want: "https://upload.wikimedia.org/x.jpg"},
		{name: "already http", addr: "http://upload.wikimedia.org/x.jpg", want: "http://upload.wikimedia.org/x.jpg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeURL(tt.addr); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
