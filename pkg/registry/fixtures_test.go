package registry

const baseDocumentJSON = `{
	"name": "eventemitter3",
	"modified": "2023-03-01T10:00:00.000Z",
	"dist-tags": {"latest": "5.0.1", "next": "5.0.0"},
	"versions": {
		"4.0.0": {
			"name": "eventemitter3",
			"version": "4.0.0",
			"dist": {"tarball": "https://registry.example/eventemitter3/-/eventemitter3-4.0.0.tgz", "shasum": "d65176163887ee59f386d64c82610b696a4a74eb"}
		},
		"4.0.7": {
			"name": "eventemitter3",
			"version": "4.0.7",
			"engines": ["node >= 0.10"],
			"dist": {"tarball": "https://registry.example/eventemitter3/-/eventemitter3-4.0.7.tgz", "shasum": "2de9b68f6528d5644ef5c59526a1b4a07306169f"}
		},
		"5.0.0": {
			"name": "eventemitter3",
			"version": "5.0.0",
			"deprecated": "use 5.0.1",
			"dist": {"tarball": "https://registry.example/eventemitter3/-/eventemitter3-5.0.0.tgz", "integrity": "sha512-aaaa"}
		},
		"5.0.1": {
			"name": "eventemitter3",
			"version": "5.0.1",
			"dependencies": {"tslib": "^2.0.0"},
			"dist": {"tarball": "https://registry.example/eventemitter3/-/eventemitter3-5.0.1.tgz", "integrity": "sha512-bbbb", "fileCount": 10, "unpackedSize": 73401}
		}
	}
}`

const fullDocument = `{
	"_id": "eventemitter3",
	"name": "eventemitter3",
	"description": "EventEmitter3 focuses on performance while maintaining a Node.js AND browser compatible interface.",
	"dist-tags": {"latest": "5.0.1", "next": "5.0.0"},
	"license": "MIT",
	"homepage": "https://github.com/primus/eventemitter3#readme",
	"repository": {"type": "git", "url": "git://github.com/primus/eventemitter3.git"},
	"keywords": ["EventEmitter", "EventEmitter3"],
	"author": "Arnout Kazemier",
	"maintainers": [
		{"name": "3rdeden", "email": "npm@3rd-eden.com"},
		{"name": "lpinca", "email": "luigipinca@gmail.com"}
	],
	"users": {"alice": true, "bob": true},
	"time": {
		"created": "2013-01-21T16:04:05.000Z",
		"modified": "2023-03-01T10:00:00.000Z",
		"4.0.0": "2019-09-05T12:00:00.000Z",
		"4.0.7": "2020-09-01T12:00:00.000Z",
		"5.0.0": "2022-12-30T12:00:00.000Z",
		"5.0.1": "2023-03-01T10:00:00.000Z"
	},
	"versions": {
		"4.0.0": {"name": "eventemitter3", "version": "4.0.0", "license": "MIT"},
		"4.0.7": {"name": "eventemitter3", "version": "4.0.7", "license": "MIT"},
		"5.0.0": {"name": "eventemitter3", "version": "5.0.0", "license": "MIT"},
		"5.0.1": {"name": "eventemitter3", "version": "5.0.1", "license": "MIT"}
	}
}`
