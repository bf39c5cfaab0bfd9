// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command intake submits a MEO custom intake without a browser.

	intake submit -f answers.yaml --accept-notice --yes
	intake validate -f answers.yaml
	intake get MEO20250001

The answers file:

	orderNo: MEO20250001
	name: 小明
	phone: "13800138000"
	personality: 活泼开朗，喜欢唱歌
	useTemplate: false
	gender: female
	photo: face.jpg
	voice: voice.wav

photo and voice are resolved relative to the answers file. The voice file must
be a PCM WAV; it is replayed through the recording dialog as if captured live.

The API is configured with MEO_API_BASE_URL, MEO_API_TIMEOUT and
MEO_API_SUCCESS_CODE (or --base-url and --timeout). A .env file in the working
directory is loaded first. --verbose enables debug logging on stderr.
*/
package main
