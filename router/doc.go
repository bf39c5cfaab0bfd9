// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the reference intake API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics - Prometheus exposition

Uploads (rate limited per client IP):

	POST /custom-info/upload-photo?orderNo=&gender=
	POST /custom-info/upload-audio?orderNo=

Intake:

	POST /custom-info/save
	GET  /custom-info/{orderNo}

Media:

	GET /media/{name}?sig=

Every API route is logged and instrumented under its pattern.
*/
package router
