// Package measure implements spec.md §4.2's measurement kernel: length,
// area, perimeter, centroid, point-on-surface, Hausdorff distance,
// planar and geographic distance, azimuth, and (as a supplemented
// feature) minimum bounding circle. All planar measurement is Cartesian
// on the stored coordinates regardless of SRID; the spherical/spheroidal
// variants interpret coordinates as (longitude_deg, latitude_deg) on
// WGS-84.
package measure
