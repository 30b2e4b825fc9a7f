package httpserver

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
)

// newProxy forwards to target with stripPrefix cut from the path. The
// request id set by the RequestID middleware goes upstream with it.
func newProxy(target, stripPrefix string) (echo.HandlerFunc, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: target, Err: errMissingHost}
	}

	p := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = strings.TrimPrefix(pr.In.URL.Path, stripPrefix)
			pr.Out.URL.RawPath = ""
			pr.SetURL(u)
			pr.SetXForwarded()
		},
		FlushInterval: 100 * time.Millisecond,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logging.FromContext(r.Context()).Error("proxy_error", "status", 502, "upstream", u.Host, "error", err)
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"message":"upstream unavailable"}`))
		},
	}

	return func(c echo.Context) error {
		req := c.Request()
		if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" && req.Header.Get(echo.HeaderXRequestID) == "" {
			req.Header.Set(echo.HeaderXRequestID, rid)
		}
		p.ServeHTTP(c.Response(), req)
		return nil
	}, nil
}
