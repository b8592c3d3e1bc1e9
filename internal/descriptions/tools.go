package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Conversion Tools
	JudgmentConvertFileDescription = `Convert a legal judgment PDF into semantically correct paragraphs.

**When to use:** Need the actual paragraph structure of a judgment (numbered grounds, party lists, headers) instead of raw line-by-line text.

**Why it's useful:** Court PDFs deliver text as positioned fragments; a numbered paragraph spanning five lines or two pages arrives as five or more separate pieces. This tool classifies every fragment, merges list continuations (including across page breaks), detects the Versus divider and respondent lists, and emits one paragraph per logical unit with role, alignment and emphasis.

**Examples:**
• Structure extraction: "Convert crl-appeal-1034.pdf and list the numbered grounds of appeal"
• Party identification: "Convert judgment.pdf and report the parties around the Versus divider"
• Document conversion: "Convert order.pdf to structured paragraphs for the case management system"

**Common workflows:**
1. Case Analysis: Convert → Read numbered paragraphs → Summarize grounds and findings
2. Document Migration: Convert → Feed paragraph JSON to a document writer → Produce editable files
3. Citation Work: Convert → Locate paragraph numbers → Quote by source numbering (markers are preserved literally)

**Best practices:** Validate the file first with pdf_validate_file; inspect the warnings array; extraction anomalies degrade gracefully and are reported there rather than as failures.`

	JudgmentLayoutFileDescription = `Summarize the reconstructed layout of a judgment PDF without full text output.

**When to use:** Need a quick structural overview (how many numbered paragraphs, whether a Versus section was found, what warnings extraction produced) before committing to full conversion.

**Why it's useful:** Returns counts per role, list statistics and the warning list in a compact form, so structural problems like unterminated lists, removed artifacts and ambiguous markers surface cheaply.

**Examples:**
• Pre-flight check: "Summarize the layout of big-judgment.pdf before converting all 300 pages"
• Quality triage: "Which PDFs in the batch produced unterminated_list warnings?"
• Structure probe: "Does notice.pdf contain a respondent section?"

**Common workflows:**
1. Batch Triage: Layout summary → Flag documents with warnings → Convert clean ones first
2. Tuning: Summarize → Adjust detection thresholds → Re-check before conversion
3. Inventory: Summarize each file → Store role counts → Route documents by structure

**Best practices:** Warnings are advisory; a document with warnings still converts, but review artifact_removed entries if content completeness matters.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to convert or summarize any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted files early, and reports page count and file size without running extraction.

**Examples:**
• Batch processing safety: "Validate all PDFs in /judgments/ before bulk conversion"
• Upload verification: "Check user-uploaded appeal.pdf is valid before processing"
• Quality control: "Verify scanned-order.pdf is readable before queueing it"

**Common workflows:**
1. Automated Processing: Validate → Convert if valid → Handle errors gracefully
2. File Quality Check: Validate → Report issues → Fix or reject bad files
3. Pre-processing Pipeline: Validate → Route to conversion or manual review

**Best practices:** Always run this first in automated workflows; validation failures are reported in the result, not as tool errors.`

	ServerInfoDescription = `Get server capabilities, configuration, and usage guidance.

**When to use:** Starting a session, debugging tool behavior, or discovering what the converter can do.

**Why it's useful:** Reports the configured input directory, file size limits, detection thresholds and available tools, so requests can be shaped to what the server accepts.

**Examples:**
• Session setup: "What directory is the converter serving and what is the size limit?"
• Capability check: "Which tools does this server expose?"
• Debugging: "Why was my file rejected, and what are the current limits?"

**Common workflows:**
1. Session Initialization: Get info → Note directory and limits → Issue conversion requests
2. Troubleshooting: Get info → Compare limits against the failing file → Adjust
3. Discovery: Get info → Pick the right tool for the task

**Best practices:** Call once at session start; the input directory constrains every path-taking tool.`
)
