// Package fetch - platform.go provides job board detection and board-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a job board the résumé query targets.
type Platform string

const (
	// PlatformLinkedIn is linkedin.com job pages
	PlatformLinkedIn Platform = "linkedin"
	// PlatformIndeed is indeed.com job pages
	PlatformIndeed Platform = "indeed"
	// PlatformGlassdoor is glassdoor.com job pages
	PlatformGlassdoor Platform = "glassdoor"
	// PlatformUnknown is any other site
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case hostMatches(host, "linkedin.com"):
		return PlatformLinkedIn
	case hostMatches(host, "indeed.com"):
		return PlatformIndeed
	case strings.HasPrefix(host, "glassdoor.") || strings.Contains(host, ".glassdoor."):
		return PlatformGlassdoor
	default:
		return PlatformUnknown
	}
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// DescriptionSelectors returns content selectors for the job description
// body on a platform, most specific first.
func DescriptionSelectors(platform Platform) []string {
	switch platform {
	case PlatformLinkedIn:
		return []string{
			".show-more-less-html__markup",
			".description__text",
			".jobs-description__content",
		}
	case PlatformIndeed:
		return []string{
			"#jobDescriptionText",
			".jobsearch-JobComponent-description",
		}
	case PlatformGlassdoor:
		return []string{
			"[class*='JobDetails_jobDescription']",
			".jobDescriptionContent",
			"#JobDescriptionContainer",
		}
	default:
		return JobPostingSelectors()
	}
}

// NoiseSelectors returns elements removed before description text is taken.
func NoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".apply-button-container",
		".social-share",
		".share-buttons",
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common,
			".show-more-less-html__button",
			".sign-up-modal",
			".contextual-sign-in-modal",
		)
	case PlatformIndeed:
		return append(common,
			"#jobsearch-ViewJobButtons-container",
			".jobsearch-RelatedLinks",
		)
	case PlatformGlassdoor:
		return append(common,
			"[data-test='hardsellOverlay']",
			".ReviewsModule",
		)
	default:
		return common
	}
}
