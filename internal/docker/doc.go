// Package docker renders assignments as Docker network definitions.
//
// This package handles:
//   - Label management for tracing a Docker network back to its server
//     slice (labels are the only metadata carried by the definitions)
//   - Docker Engine network-create request bodies, one IPv6 network per
//     server subnet, built from github.com/docker/docker/api/types/network
//
// Nothing here talks to a Docker daemon. The request bodies are printed so
// an operator can feed them to `docker network create` or the Engine API.
package docker
