package dcp

import (
	"fmt"
	"strings"

	"adpod/internal/cpl"
)

// DefaultIssuer is stamped into emitted documents unless overridden.
const DefaultIssuer = "Qube Cinema"

// placeholderHash stands in for real file digests; the package is
// metadata-only, essence files are never opened.
const placeholderHash = "0000000000000000000000000000000000000000"

// RenderAssetMap renders the ASSETMAP document: the pod UUID once as the
// packing-list entry and once for the CPL document, then one entry per
// referenced essence file. Chunk offsets and lengths are zero because no
// real file sizes exist at this stage.
func RenderAssetMap(meta cpl.Metadata, mxfReferences []string, issuer string) string {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<AssetMap xmlns=\"http://www.smpte-ra.org/schemas/429-9/2007/AM\">\n")
	fmt.Fprintf(&b, "  <Id>%s</Id>\n", meta.UUID)
	fmt.Fprintf(&b, "  <Creator>%s</Creator>\n", meta.Creator)
	b.WriteString("  <VolumeCount>1</VolumeCount>\n")
	fmt.Fprintf(&b, "  <IssueDate>%s</IssueDate>\n", meta.IssueDate)
	fmt.Fprintf(&b, "  <Issuer>%s</Issuer>\n", issuer)
	b.WriteString("  <AssetList>\n")

	b.WriteString("    <Asset>\n")
	fmt.Fprintf(&b, "      <Id>%s</Id>\n", meta.UUID)
	b.WriteString("      <PackingList>true</PackingList>\n")
	writeChunkList(&b, fmt.Sprintf("PKL_%s.xml", meta.ContentTitle))
	b.WriteString("    </Asset>\n")

	b.WriteString("    <Asset>\n")
	fmt.Fprintf(&b, "      <Id>%s</Id>\n", meta.UUID)
	writeChunkList(&b, fmt.Sprintf("CPL_%s.xml", meta.ContentTitle))
	b.WriteString("    </Asset>\n")

	for _, mxf := range mxfReferences {
		b.WriteString("    <Asset>\n")
		fmt.Fprintf(&b, "      <Id>%s</Id>\n", mxf)
		writeChunkList(&b, mxf+".mxf")
		b.WriteString("    </Asset>\n")
	}

	b.WriteString("  </AssetList>\n")
	b.WriteString("</AssetMap>")

	return b.String()
}

func writeChunkList(b *strings.Builder, path string) {
	b.WriteString("      <ChunkList>\n")
	b.WriteString("        <Chunk>\n")
	fmt.Fprintf(b, "          <Path>%s</Path>\n", path)
	b.WriteString("          <VolumeIndex>1</VolumeIndex>\n")
	b.WriteString("          <Offset>0</Offset>\n")
	b.WriteString("          <Length>0</Length>\n")
	b.WriteString("        </Chunk>\n")
	b.WriteString("      </ChunkList>\n")
}

// RenderPKL renders the packing list: one asset entry for the CPL document
// and one per referenced essence file, with placeholder sizes and hashes.
func RenderPKL(meta cpl.Metadata, mxfReferences []string, issuer string) string {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<PackingList xmlns=\"http://www.smpte-ra.org/schemas/429-8/2007/PKL\">\n")
	fmt.Fprintf(&b, "  <Id>%s</Id>\n", meta.UUID)
	fmt.Fprintf(&b, "  <IssueDate>%s</IssueDate>\n", meta.IssueDate)
	fmt.Fprintf(&b, "  <Issuer>%s</Issuer>\n", issuer)
	fmt.Fprintf(&b, "  <Creator>%s</Creator>\n", meta.Creator)
	b.WriteString("  <AssetList>\n")

	writePKLAsset(&b, meta.UUID, "text/xml", fmt.Sprintf("CPL_%s.xml", meta.ContentTitle))
	for _, mxf := range mxfReferences {
		writePKLAsset(&b, mxf, "application/mxf", mxf+".mxf")
	}

	b.WriteString("  </AssetList>\n")
	b.WriteString("</PackingList>")

	return b.String()
}

func writePKLAsset(b *strings.Builder, id, mimeType, fileName string) {
	b.WriteString("    <Asset>\n")
	fmt.Fprintf(b, "      <Id>%s</Id>\n", id)
	fmt.Fprintf(b, "      <Type>%s</Type>\n", mimeType)
	fmt.Fprintf(b, "      <OriginalFileName>%s</OriginalFileName>\n", fileName)
	b.WriteString("      <Size>0</Size>\n")
	fmt.Fprintf(b, "      <Hash>%s</Hash>\n", placeholderHash)
	b.WriteString("    </Asset>\n")
}

// RenderCPL renders the stitched composition playlist: header fields, a
// single content version, and the full reel list with each reel's asset ids
// in order. Content kind is always "advertisement".
func RenderCPL(meta cpl.Metadata, issuer string) string {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<CompositionPlaylist xmlns=\"http://www.smpte-ra.org/schemas/2067-3/2016\">\n")
	fmt.Fprintf(&b, "  <Id>%s</Id>\n", meta.UUID)
	fmt.Fprintf(&b, "  <IssueDate>%s</IssueDate>\n", meta.IssueDate)
	fmt.Fprintf(&b, "  <Issuer>%s</Issuer>\n", issuer)
	fmt.Fprintf(&b, "  <Creator>%s</Creator>\n", meta.Creator)
	fmt.Fprintf(&b, "  <ContentTitleText>%s</ContentTitleText>\n", meta.ContentTitle)
	b.WriteString("  <ContentKind>advertisement</ContentKind>\n")
	b.WriteString("  <ContentVersion>\n")
	fmt.Fprintf(&b, "    <Id>%s-version</Id>\n", meta.UUID)
	fmt.Fprintf(&b, "    <LabelText>%s Version 1</LabelText>\n", meta.ContentTitle)
	b.WriteString("  </ContentVersion>\n")
	fmt.Fprintf(&b, "  <EditRate>%s</EditRate>\n", meta.EditRate)
	b.WriteString("  <ReelList>\n")

	for _, reel := range meta.Reels {
		b.WriteString("    <Reel>\n")
		fmt.Fprintf(&b, "      <Id>%s</Id>\n", reel.UUID)
		b.WriteString("      <AssetList>\n")
		for _, asset := range reel.Assets {
			b.WriteString("        <Asset>\n")
			fmt.Fprintf(&b, "          <Id>%s</Id>\n", asset.UUID)
			b.WriteString("        </Asset>\n")
		}
		b.WriteString("      </AssetList>\n")
		b.WriteString("    </Reel>\n")
	}

	b.WriteString("  </ReelList>\n")
	b.WriteString("</CompositionPlaylist>")

	return b.String()
}
