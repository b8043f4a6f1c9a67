package help

const QuickstartYAML = `# esaan Quick Start

sources:
  pdf: "Text layer of a PDF (pdfcpu validates, one page per PDF page)"
  html: "HTML export; div.page / section.page / [data-page-number] become pages"
  json: "A previous output/dissertation_extracted.json, rescanned without the original"
  url: "http(s) download of any of the above, cached for --max-age"

commands:
  extract: |
    esaan extract thesis.pdf
    esaan extract thesis.pdf --from 20 --to 80 --workers 8
    esaan extract thesis.pdf --max-age 24h   # replay the exported document if fresh

  config_file: |
    esaan extract --config esaan.yaml thesis.pdf

  list_runs: |
    esaan runs

  pages_by_flag: |
    esaan pages --flag has_jazz --flag has_thai_music
    esaan pages --filter "flag:has_fusion,feature:tempo|rhythm,page:>=40"

  search: |
    esaan search "khaen"
    esaan search "ลายใหญ่" --format json

  notation: |
    esaan notation --type lai_mode --type scale_degrees
    esaan notation --clean

  catalog: |
    esaan catalog
    esaan catalog --schema --format json

key_files:
  - "output/dissertation_extracted.json (page text, chapters, music_features)"
  - "output/dissertation_pages.csv, output/dissertation_analysis.csv"
  - "output/summary.json, output/notation_summary.json, output/quality_report.json"
  - "output/music_notation_dataset/ (notation and composition datasets)"
  - "output/dataset/ (feature catalog and dataset schema)"
  - "output/manifest.json (run id, counts, artifact sizes)"

run_states:
  - "unextracted -> text_loaded -> scanned -> deduplicated -> aggregated -> exported"
  - "A run that fails at any step is recorded as failed"
  - "Query commands use the latest exported run unless --run is given"

page_flags:
  - has_thai_music
  - has_jazz
  - has_ml_terms
  - has_fusion

error_behavior:
  - "Unreadable source: nothing is written, exit code 1"
  - "Unreadable page: skipped, listed under skipped_pages"
  - "Invalid pattern configuration: fails at startup"
`
