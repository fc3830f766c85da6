package openstack

import (
	"net/http"

	"github.com/gophercloud/gophercloud/v2"
)

// IsNotFound checks if an error is a 404 from any OpenStack service.
func IsNotFound(err error) bool {
	return gophercloud.ResponseCodeIs(err, http.StatusNotFound)
}

// IsConflict checks if an error is a 409. Blazar answers 409 while a
// lease is mid-transition; such errors are worth retrying.
func IsConflict(err error) bool {
	return gophercloud.ResponseCodeIs(err, http.StatusConflict)
}

// IsOverQuota checks if an error is a 403 used by Blazar and Zun for
// quota violations. Not retryable.
func IsOverQuota(err error) bool {
	return gophercloud.ResponseCodeIs(err, http.StatusForbidden)
}
