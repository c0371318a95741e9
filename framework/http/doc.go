// Package http provides JSON response helpers and the read-only service
// inspection endpoints.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(v)                                 // 200 {"data": v}
//	res.Problem(http.StatusNotFound, name, detail) // 404 {"error": name, "detail": detail}
//	res.ServerError()                              // 500 {"error": "server-error", ...}
//
// # Service inspection
//
//	inspector := gohttp.NewServiceInspector(c, logger)
//	router.Get("/_services", inspector.Index)
//	router.Get("/_services/{name}", inspector.Show)
package http
