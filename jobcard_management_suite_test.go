package main_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestJobCardManagement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "JobCardManagement Suite")
}
