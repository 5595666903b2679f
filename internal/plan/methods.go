package plan

// Method describes one named repair remedy. Only span fixes are applied
// automatically; every other method is surfaced as a hint for a
// higher-level or human-driven process.
type Method struct {
	RepairCode           string   `json:"repair_code"`
	AppliesToEventCodes  []string `json:"applies_to_event_codes"`
	Description          string   `json:"description"`
	ApproximationAllowed bool     `json:"approximation_allowed"`
	Strategy             string   `json:"strategy"`
	Safety               string   `json:"safety"`
	Notes                string   `json:"notes"`
}

// Methods returns the fixed repair-method catalogue embedded in every
// plan artifact.
func Methods() []Method {
	return []Method{
		{
			RepairCode:           "REPAIR_FIX_NEW_SPAN_HEADER",
			AppliesToEventCodes:  []string{"HUNK_INVALID_NEW_SPAN_MISMATCH"},
			Description:          "Corrects the new_span field in the hunk header so it matches actual added+context lines.",
			ApproximationAllowed: false,
			Strategy:             "Rewrite +section span in @@ header to actual_new_span derived from body.",
			Safety:               "medium",
			Notes:                "Most common corruption. Safe to auto-apply in many cases.",
		},
		{
			RepairCode:           "REPAIR_FIX_OLD_SPAN_HEADER",
			AppliesToEventCodes:  []string{"HUNK_INVALID_OLD_SPAN_MISMATCH"},
			Description:          "Corrects the old_span field in the hunk header so it matches actual removed+context lines.",
			ApproximationAllowed: false,
			Strategy:             "Rewrite -section span in @@ header to actual_old_span derived from body.",
			Safety:               "medium",
			Notes:                "Pair with REPAIR_FIX_NEW_SPAN_HEADER when both sides mismatch.",
		},
		{
			RepairCode:           "REPAIR_RECONSTRUCT_MALFORMED_HEADER",
			AppliesToEventCodes:  []string{"HUNK_INVALID_MALFORMED_HEADER"},
			Description:          "Reconstructs a missing, truncated or corrupted @@ header.",
			ApproximationAllowed: true,
			Strategy:             "Infer spans from body or context, synthesise a minimal canonical @@ header.",
			Safety:               "low",
			Notes:                "Useful when patches are damaged by emails, markdown or PDF extraction.",
		},
		{
			RepairCode:           "REPAIR_REBUILD_HUNK_FROM_BODY",
			AppliesToEventCodes:  []string{"HUNK_INVALID_UNEXPECTED_LINE"},
			Description:          "Repairs a hunk body by rewriting non-prefix lines into valid context or removed lines.",
			ApproximationAllowed: true,
			Strategy:             "Filter or normalise unexpected body lines; convert to context when unclear.",
			Safety:               "low",
			Notes:                "Good for salvaging when formatting bled into diff body.",
		},
		{
			RepairCode:           "REPAIR_REMOVE_WHITESPACE_CORRUPTION",
			AppliesToEventCodes:  []string{"WHITESPACE_TRIMMED"},
			Description:          "Normalises whitespace to prevent prefix corruption in diff lines.",
			ApproximationAllowed: true,
			Strategy:             "Convert tabs to spaces; ensure diff prefixes are intact and aligned.",
			Safety:               "medium",
			Notes:                "Important for patches copied from terminals or web consoles.",
		},
		{
			RepairCode:           "REPAIR_STRIP_LEADING_PLUS_BLANKS",
			AppliesToEventCodes:  []string{"EOF_PLUS_BLANK_DROPPED"},
			Description:          "Removes or normalises trailing '+ blank' lines at EOF.",
			ApproximationAllowed: true,
			Strategy:             "Drop trailing '+\\n' lines or treat them as context if needed.",
			Safety:               "high",
			Notes:                "Rarely harmful; git typically ignores these lines.",
		},
		{
			RepairCode: "REPAIR_APPROXIMATE_HEADER_REWRITE",
			AppliesToEventCodes: []string{
				"HUNK_INVALID_NEW_SPAN_MISMATCH",
				"HUNK_INVALID_OLD_SPAN_MISMATCH",
				"HUNK_INVALID_MALFORMED_HEADER",
			},
			Description:          "Creates an approximate header when exact reconstruction is not possible.",
			ApproximationAllowed: true,
			Strategy:             "Estimate spans from available body information and fallback heuristics.",
			Safety:               "low",
			Notes:                "Enables partial recovery of heavily corrupted hunks.",
		},
		{
			RepairCode: "REPAIR_DROP_HUNK_IF_UNFIXABLE",
			AppliesToEventCodes: []string{
				"HUNK_INVALID_NEW_SPAN_MISMATCH",
				"HUNK_INVALID_OLD_SPAN_MISMATCH",
				"HUNK_INVALID_UNEXPECTED_LINE",
				"HUNK_INVALID_MALFORMED_HEADER",
			},
			Description:          "Drops the hunk entirely when repair attempts fail.",
			ApproximationAllowed: false,
			Strategy:             "Remove the hunk block from the patch.",
			Safety:               "destructive",
			Notes:                "Last resort when structural recovery is not feasible.",
		},
		{
			RepairCode:           "REPAIR_REGENERATE_DIFF_FOR_FILE",
			AppliesToEventCodes:  []string{"FILE_DROPPED_NO_VALID_HUNKS"},
			Description:          "Regenerates the diff for a single file from the source tree.",
			ApproximationAllowed: false,
			Strategy:             "Use git diff or semantic diff for the specific file.",
			Safety:               "high",
			Notes:                "Preferred when repository context is available.",
		},
		{
			RepairCode:           "REPAIR_REGENERATE_FULL_PATCH",
			AppliesToEventCodes:  []string{"PLAN_SUMMARY"},
			Description:          "Recreates the entire patch if all other repairs fail.",
			ApproximationAllowed: true,
			Strategy:             "Regenerate patch via git diff or semantic diff, possibly in multiple passes.",
			Safety:               "high",
			Notes:                "Used when valid_files == 0 or patch is fully broken.",
		},
		{
			RepairCode:           "REPAIR_VERIFY_WITH_GIT_APPLY",
			AppliesToEventCodes:  []string{"GIT_VALIDATE_ERROR"},
			Description:          "Performs iterative repair cycles until git accepts the patch.",
			ApproximationAllowed: false,
			Strategy:             "Apply selected repairs, rerun git apply --check, repeat until clean or give up.",
			Safety:               "high",
			Notes:                "Acts as a final gatekeeper before accepting a patch.",
		},
	}
}
