package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.linkedin.com/jobs/view/3790000000", PlatformLinkedIn},
		{"https://linkedin.com/jobs/view/1", PlatformLinkedIn},
		{"https://uk.linkedin.com/jobs/view/1", PlatformLinkedIn},
		{"https://www.indeed.com/viewjob?jk=abc", PlatformIndeed},
		{"https://ca.indeed.com/viewjob?jk=abc", PlatformIndeed},
		{"https://www.glassdoor.com/job-listing/analyst", PlatformGlassdoor},
		{"https://www.glassdoor.co.uk/job-listing/analyst", PlatformGlassdoor},
		{"https://notlinkedin.com/jobs", PlatformUnknown},
		{"https://jobs.example.com/1", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestDescriptionSelectors(t *testing.T) {
	assert.Contains(t, DescriptionSelectors(PlatformIndeed), "#jobDescriptionText")
	assert.Contains(t, DescriptionSelectors(PlatformLinkedIn), ".description__text")
	assert.Equal(t, JobPostingSelectors(), DescriptionSelectors(PlatformUnknown))
}

func TestNoiseSelectors(t *testing.T) {
	common := NoiseSelectors(PlatformUnknown)
	for _, platform := range []Platform{PlatformLinkedIn, PlatformIndeed, PlatformGlassdoor} {
		selectors := NoiseSelectors(platform)
		assert.Greater(t, len(selectors), len(common), "platform %s", platform)
		assert.Contains(t, selectors, "form")
	}
}
