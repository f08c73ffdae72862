/*
go-motmetrics provides benchmark metrics for multiple object tracking (MOT)
in the spirit of the CLEAR MOT evaluation protocol.  A per frame event log of
classified correspondences between ground truth objects and tracker
hypotheses is reduced to a fixed set of aggregate metrics such as MOTA, MOTP,
precision, recall, track fragmentation, and track completeness classes.

The library is distance agnostic.  Callers supply a pairwise distance matrix
per frame and the Accumulator classifies each correspondence into MATCH,
SWITCH, MISS or FP events using the pluggable linear assignment solvers of
the lap subpackage.  Metrics are defined as nodes of a dependency graph so
shared intermediate quantities are computed once per evaluation.

See example code and usage in the example subdirectory.
*/
package motmetrics
