package cpl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultEditRate is substituted when a document carries no EditRate element.
const DefaultEditRate = "24 1"

var (
	aspectRatioPattern = regexp.MustCompile(`<ScreenAspectRatio>([^<]+)</ScreenAspectRatio>`)
	reelBlockPattern   = regexp.MustCompile(`(?s)<Reel>(.*?)</Reel>`)
	idPattern          = regexp.MustCompile(`<Id>([^<]+)</Id>`)

	tagPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, tag := range []string{"Id", "UUID", "ContentTitleText", "Title", "EditRate"} {
		tagPatterns[tag] = regexp.MustCompile(fmt.Sprintf(`<%s[^>]*>([^<]+)</%s>`, tag, tag))
	}
}

// tagValue returns the immediate text content of the first element with the
// given tag name, or "" when the element is absent.
func tagValue(tag, content string) string {
	pattern, ok := tagPatterns[tag]
	if !ok {
		pattern = regexp.MustCompile(fmt.Sprintf(`<%s[^>]*>([^<]+)</%s>`, tag, tag))
	}
	match := pattern.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// Extract parses one CPL document's text into Metadata. It never fails:
// missing or malformed fields fall back to defaults rather than producing an
// error, so any text input yields a usable (if sparse) record.
func Extract(rawText, fileName string) Metadata {
	uuid := tagValue("Id", rawText)
	if uuid == "" {
		uuid = tagValue("UUID", rawText)
	}

	contentTitle := tagValue("ContentTitleText", rawText)
	if contentTitle == "" {
		contentTitle = tagValue("Title", rawText)
	}
	if contentTitle == "" {
		contentTitle = fileName
	}

	editRate := tagValue("EditRate", rawText)

	aspect := AspectFlat
	if match := aspectRatioPattern.FindStringSubmatch(rawText); match != nil {
		if ratio, err := strconv.ParseFloat(strings.TrimSpace(match[1]), 64); err == nil && ratio > 2.0 {
			aspect = AspectScope
		}
	}

	// Any one marker flags the document encrypted. Conservative on purpose:
	// a KeyId mentioned in an unrelated context still rejects the CPL.
	encrypted := strings.Contains(rawText, "<Encrypted>true</Encrypted>") ||
		strings.Contains(rawText, "<KeyId>") ||
		strings.Contains(rawText, "<CipherAlgorithm>")

	var reels []Reel
	for reelIndex, block := range reelBlockPattern.FindAllStringSubmatch(rawText, -1) {
		reelContent := block[1]
		reelUUID := tagValue("Id", reelContent)
		if reelUUID == "" {
			reelUUID = fmt.Sprintf("reel-%d", reelIndex)
		}

		var assets []Asset
		for _, idMatch := range idPattern.FindAllStringSubmatch(reelContent, -1) {
			value := idMatch[1]
			if value == reelUUID {
				// The reel's own identifier is not an asset reference.
				continue
			}
			assets = append(assets, Asset{UUID: value})
		}

		reels = append(reels, Reel{
			ID:       fmt.Sprintf("reel-%d", reelIndex),
			UUID:     reelUUID,
			Assets:   assets,
			EditRate: editRate,
		})
	}

	result := Metadata{
		UUID:         uuid,
		ContentTitle: contentTitle,
		EditRate:     editRate,
		Aspect:       aspect,
		Encrypted:    encrypted,
		Reels:        reels,
	}
	if result.EditRate == "" {
		result.EditRate = DefaultEditRate
	}
	return result
}
