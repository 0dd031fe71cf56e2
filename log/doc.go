/*
Package log provides global output control for dnsrev. Logging comes in four levels:
Silent, Major, Minor and Debug with each level more detailed than the previous. Levels are
inclusive, so, e.g., if MinorLevel is set that implies MajorLevel logging.

dnsrev reports one Major line per zone processed, Minor lines for record counts and
Debug lines for each canonicalizer invocation. Diffs are written directly to Out()
regardless of level as the user explicitly asked for them.

Errors are not levelled. They go to Err() which defaults to os.Stderr so that a cron
job mailing only stderr sees failures and nothing else.

The Print and Printf interface are similar to the fmt versions with a few subtle
differences due to the need to prefix lines. If the resulting string contains multiple
lines they are all printed with the prefix for the logging level and a trailing newline
is not needed as excess ones are trimmed.
*/
package log
